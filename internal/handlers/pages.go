package handlers

import (
	"html/template"

	"villaserena.it/serena-web/internal/nav"
	"villaserena.it/serena-web/internal/notice"
)

// PageData is the generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       SEOData
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Notices     []notice.Notice

	// Optional per-page view model payloads
	Home    any
	Page    any
	Contact any
}

// SEOData carries the head metadata for a rendered page.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
	Twitter struct {
		Card  string
		Site  string
		Image string
	}
	Alternates []struct{ Href, Hreflang string }
	// JSONLD entries are marshaled JSON; template.JS keeps them verbatim
	// inside the script tags.
	JSONLD []template.JS
}

package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item. Anchor items point at landing
// page sections; path items at subpages.
type Item struct {
	Href     string // e.g. "/#gallery" or "/pages/story"
	LabelKey string // i18n key, e.g. "nav.gallery"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Href: "/#venue", LabelKey: "nav.venue"},
	{Href: "/#gallery", LabelKey: "nav.gallery"},
	{Href: "/#layouts", LabelKey: "nav.layouts"},
	{Href: "/#reviews", LabelKey: "nav.reviews"},
	{Href: "/pages/story", LabelKey: "nav.story"},
	{Href: "/#contact", LabelKey: "nav.contact"},
}

// Build renders navigation items with active state given the current path.
// Anchor items are active only on the landing page itself.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Href,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Href, currentPath),
		})
	}
	return items
}

func isActive(href, currentPath string) bool {
	if i := strings.IndexByte(href, '#'); i != -1 {
		base := href[:i]
		if base == "" || base == "/" {
			base = "/"
		}
		return currentPath == base
	}
	if currentPath == href {
		return true
	}
	return strings.HasPrefix(currentPath, href+"/")
}

// Breadcrumbs builds breadcrumb entries for subpages: Home, then one crumb
// per path segment with a prettified label. Intermediate segments carry no
// Href because only the full path is routable ("/pages" alone serves
// nothing).
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	if clean == "." {
		return crumbs
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		c := Crumb{
			Label:  titleFromSegment(seg),
			Active: i == len(parts)-1,
		}
		if c.Active {
			c.Href = clean
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

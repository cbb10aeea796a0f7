package main

import (
	"html/template"
	"net/http"

	mw "villaserena.it/serena-web/internal/middleware"
	"villaserena.it/serena-web/internal/seo"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "home.title", site.Venue.Name)
	desc := i18nOrDefault(lang, "home.description", site.Venue.Tagline.In(lang))

	vm := pageScaffold(r, lang, title, desc)
	vm.Home = buildHomeView(lang, mw.GetSession(r).CSRFToken)
	vm.SEO.JSONLD = []template.JS{
		template.JS(seo.JSON(seo.EventVenue(
			site.Venue.Name,
			site.Venue.URL,
			site.Venue.Phone,
			site.Venue.Address,
			site.Venue.City,
			site.AverageRating(),
			len(site.Reviews),
		))),
		template.JS(seo.JSON(seo.WebSite(site.Venue.Name, site.Venue.URL))),
	}

	renderPage(w, r, "page_home", vm)
}

package main

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"villaserena.it/serena-web/internal/content"
	mw "villaserena.it/serena-web/internal/middleware"
	"villaserena.it/serena-web/internal/seo"
)

// ContentPageHandler renders a localized markdown subpage.
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	slug := chi.URLParam(r, "slug")

	page, err := content.LoadPage(contentDir, slug, lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	vm := pageScaffold(r, lang, page.Title, page.Summary)
	vm.Page = page
	crumbs := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
	for _, c := range vm.Breadcrumbs {
		name := c.Label
		if name == "" {
			name = i18nOrDefault(lang, c.LabelKey, "Home")
		}
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: c.Href})
	}
	vm.SEO.JSONLD = []template.JS{template.JS(seo.JSON(seo.BreadcrumbList(crumbs)))}

	renderPage(w, r, "page_content", vm)
}

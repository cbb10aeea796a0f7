package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	handlersPkg "villaserena.it/serena-web/internal/handlers"
	"villaserena.it/serena-web/internal/nav"
)

var tmplCache *template.Template

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			return i18nBundle.T(lang, key)
		},
		"add": func(a, b int) int { return a + b },
	}
	// Recursively discover and parse all .tmpl files. ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func lookupTemplates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// renderPage executes a full page template.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := lookupTemplates(w)
	if t == nil {
		return
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// renderTemplate executes a fragment template without the page chrome.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := lookupTemplates(w)
	if t == nil {
		return
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

func i18nOrDefault(lang, key, fallback string) string {
	if v := i18nBundle.T(lang, key); v != key {
		return v
	}
	return fallback
}

func absoluteURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil && (r.Host == "" || strings.HasPrefix(r.Host, "localhost") || strings.HasPrefix(r.Host, "127.")) {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

func buildAlternates(r *http.Request) []struct{ Href, Hreflang string } {
	base := absoluteURL(r)
	out := make([]struct{ Href, Hreflang string }, 0, len(i18nBundle.Supported()))
	for _, lang := range i18nBundle.Supported() {
		out = append(out, struct{ Href, Hreflang string }{Href: base + "?hl=" + lang, Hreflang: lang})
	}
	return out
}

// pageScaffold assembles the layout fields every page shares.
func pageScaffold(r *http.Request, lang, title, description string) handlersPkg.PageData {
	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Analytics:   handlersPkg.LoadAnalyticsFromEnv(),
		Notices:     notices.Active(),
	}
	brand := i18nOrDefault(lang, "brand.name", site.Venue.Name)
	vm.SEO.Title = title + " | " + brand
	vm.SEO.Description = description
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = brand
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = description
	vm.SEO.OG.Type = "website"
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Alternates = buildAlternates(r)
	return vm
}

package main

import (
	"net/http"

	"villaserena.it/serena-web/internal/cycle"
	mw "villaserena.it/serena-web/internal/middleware"
)

type layoutsView struct {
	Lang    string
	Layouts []layoutView
	Active  layoutView
}

// LayoutFrag renders the layout tab switcher with the requested tab
// selected. Unknown tab ids are rejected; tabs jump, they never wrap.
func LayoutFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	tab := r.URL.Query().Get("tab")

	ring := cycle.New(len(site.Layouts))
	idx := site.LayoutIndex(tab)
	if idx < 0 {
		http.Error(w, "unknown layout", http.StatusBadRequest)
		return
	}
	if err := ring.GoTo(idx); err != nil {
		http.Error(w, "layout out of range", http.StatusBadRequest)
		return
	}

	cur, ok := ring.Current()
	if !ok {
		http.Error(w, "no layouts configured", http.StatusNotFound)
		return
	}
	views := buildLayoutViews(lang, cur)
	renderTemplate(w, r, "frag_layouts", layoutsView{
		Lang:    lang,
		Layouts: views,
		Active:  views[cur],
	})
}

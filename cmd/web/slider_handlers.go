package main

import (
	"net/http"
	"strconv"

	"villaserena.it/serena-web/internal/cycle"
	mw "villaserena.it/serena-web/internal/middleware"
)

// SliderFrag renders the next or previous hero slide relative to the index
// the client is showing. The client restarts its advance timer whenever a
// manual navigation lands, so automatic and manual steps never stack.
func SliderFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	ring := cycle.New(len(site.Slides))

	q := r.URL.Query()
	if v := q.Get("i"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad slide index", http.StatusBadRequest)
			return
		}
		if err := ring.GoTo(i); err != nil {
			http.Error(w, "slide index out of range", http.StatusBadRequest)
			return
		}
	}
	switch q.Get("dir") {
	case "", "next":
		ring.Next()
	case "prev":
		ring.Prev()
	default:
		http.Error(w, "bad direction", http.StatusBadRequest)
		return
	}

	i, ok := ring.Current()
	if !ok {
		http.Error(w, "no slides configured", http.StatusNotFound)
		return
	}
	renderTemplate(w, r, "frag_slide", buildSlideView(lang, i))
}

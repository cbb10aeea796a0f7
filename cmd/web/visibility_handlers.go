package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"villaserena.it/serena-web/internal/viewport"
)

// VisibilityHandler answers whether the floating reviews banner should be
// shown for the reported scroll position. The route sits behind a throttle
// so scroll storms collapse to at most one evaluation per window.
func VisibilityHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		bad    bool
		getF64 = func(name string) float64 {
			v, err := strconv.ParseFloat(q.Get(name), 64)
			if err != nil {
				bad = true
			}
			return v
		}
	)

	scrollY := getF64("scroll")
	vh := getF64("vh")
	gate := viewport.Gate{
		Start: viewport.Rect{Top: getF64("start_top"), Height: getF64("start_height")},
		End:   viewport.Rect{Top: getF64("end_top"), Height: getF64("end_height")},
	}
	if bad {
		http.Error(w, "malformed geometry", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(struct {
		Visible bool `json:"visible"`
	}{Visible: gate.Visible(scrollY, vh)})
}

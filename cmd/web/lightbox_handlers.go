package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"villaserena.it/serena-web/internal/gallery"
	mw "villaserena.it/serena-web/internal/middleware"
)

type lightboxView struct {
	Lang  string
	Image imageView
}

// LightboxFrag renders the lightbox overlay for image i, optionally moved
// one step by nav=next|prev. An out-of-range index is a client bug and gets
// a 400 rather than silently wrapping.
func LightboxFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	q := r.URL.Query()

	i, err := strconv.Atoi(q.Get("i"))
	if err != nil {
		http.Error(w, "bad image index", http.StatusBadRequest)
		return
	}
	lb := gallery.New(len(site.Gallery))
	if err := lb.Open(i); err != nil {
		http.Error(w, "image index out of range", http.StatusBadRequest)
		return
	}
	switch q.Get("nav") {
	case "":
	case "next":
		lb.Next()
	case "prev":
		lb.Prev()
	default:
		http.Error(w, "bad nav", http.StatusBadRequest)
		return
	}

	cur, ok := lb.Current()
	if !ok {
		http.Error(w, "no gallery configured", http.StatusNotFound)
		return
	}
	renderTemplate(w, r, "frag_lightbox", lightboxView{Lang: lang, Image: buildImageView(lang, cur)})
}

// LightboxKeyHandler applies a keyboard event to the lightbox. The form
// carries the key name and, while the overlay is open, the shown index. Keys
// arriving while the lightbox is closed are ignored with 204.
func LightboxKeyHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	key := gallery.Key(r.PostFormValue("key"))
	rawIndex := r.PostFormValue("i")

	lb := gallery.New(len(site.Gallery))
	if rawIndex != "" {
		i, err := strconv.Atoi(rawIndex)
		if err != nil {
			http.Error(w, "bad image index", http.StatusBadRequest)
			return
		}
		if err := lb.Open(i); err != nil {
			http.Error(w, "image index out of range", http.StatusBadRequest)
			return
		}
	}

	if !lb.HandleKey(key) {
		// closed overlay or unmapped key: nothing to do
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := struct {
		Open  bool `json:"open"`
		Index int  `json:"index"`
	}{Open: lb.IsOpen()}
	if i, ok := lb.Current(); ok {
		resp.Index = i
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}

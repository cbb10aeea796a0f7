package main

import (
	"net/http"

	mw "villaserena.it/serena-web/internal/middleware"
)

// ReviewFrag renders the review currently on the rotating banner.
func ReviewFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	i, ok := reviewBoard.Current()
	if !ok {
		http.Error(w, "no reviews configured", http.StatusNotFound)
		return
	}
	renderTemplate(w, r, "frag_review", buildReviewView(lang, i))
}

// ReviewNextFrag advances the banner manually. The board re-bases its
// automatic timer so the next scheduled rotation is a full interval away.
func ReviewNextFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	i, ok := reviewBoard.Advance()
	if !ok {
		http.Error(w, "no reviews configured", http.StatusNotFound)
		return
	}
	renderTemplate(w, r, "frag_review", buildReviewView(lang, i))
}

package middleware

import "net/http"

// VaryLocale marks dynamic responses as language-dependent for caches. The
// rendered language follows Accept-Language and the hl cookie.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}

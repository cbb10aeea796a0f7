package middleware

import (
	"net/http"
)

// HTMX flags fragment requests (the site script sends HX-Request on its
// fetches) so error responses can pick JSON over an HTML error page.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

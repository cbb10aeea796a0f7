package middleware

import (
	"context"
	"net/http"
	"strings"

	"villaserena.it/serena-web/internal/i18n"
)

// Locale resolves the visitor's language and stores it in the session and
// the `hl` cookie. Precedence: explicit ?hl= switch, then session, then
// cookie, then Accept-Language. Unsupported codes fall back to the bundle's
// fallback language so a stale cookie can never select a missing locale.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := r.URL.Query().Get("hl"); q != "" {
				q = strings.ToLower(q)
				if !bundle.Has(q) {
					q = bundle.Fallback()
				}
				s.Locale = q
				s.MarkDirty()
				http.SetCookie(w, &http.Cookie{Name: "hl", Value: q, Path: "/"})
			} else if s.Locale == "" {
				if c, err := r.Cookie("hl"); err == nil && c.Value != "" {
					s.Locale = strings.ToLower(c.Value)
				} else {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				if !bundle.Has(s.Locale) {
					s.Locale = bundle.Fallback()
				}
				s.MarkDirty()
			}
			if s.Locale != "" {
				w.Header().Set("Content-Language", s.Locale)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Lang returns the resolved language for the request, defaulting to "en".
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return "en"
}

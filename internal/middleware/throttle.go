package middleware

import (
	"net/http"

	"villaserena.it/serena-web/internal/timing"
)

// Throttle rate-limits a high-frequency endpoint per client, admitting at
// most one request per the gate's interval. Rejected requests get 204: the
// caller simply keeps its previous answer until the next admitted report.
func Throttle(gate *timing.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.Allow(clientIP(r)) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

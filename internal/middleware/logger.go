package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
)

type logEntry struct {
	Timestamp  string `json:"ts"`
	Level      string `json:"level"`
	Message    string `json:"msg"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	RemoteIP   string `json:"remote_ip,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Lang       string `json:"lang,omitempty"`
	HTMX       bool   `json:"htmx"`
}

// Logger emits a structured JSON log per request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := NewResponseRecorder(w)
		next.ServeHTTP(rw, r)
		rid := chiMid.GetReqID(r.Context())
		var lang string
		if s := GetSession(r); s != nil {
			lang = s.Locale
		}
		e := logEntry{
			Timestamp:  time.Now().Format(time.RFC3339Nano),
			Level:      "info",
			Message:    "request",
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rw.Status(),
			DurationMs: time.Since(start).Milliseconds(),
			RemoteIP:   clientIP(r),
			RequestID:  rid,
			Lang:       lang,
			HTMX:       IsHTMX(r.Context()),
		}
		b, _ := json.Marshal(e)
		log.Println(string(b))
	})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}

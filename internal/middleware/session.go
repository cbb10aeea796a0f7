package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const sessionCookieName = "SERENA_WEB_SESSION"

// SessionData is the signed cookie payload. The site keeps no server-side
// state per visitor; the cookie carries only the language choice and the
// CSRF token for the booking form.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

var sessionSignKey []byte
var sessionSecure bool

func init() {
	// signing key: prefer env var; if absent, generate a process-ephemeral one (dev only)
	key := os.Getenv("SERENA_WEB_SESSION_SIGNING_KEY")
	if key == "" {
		sessionSignKey = make([]byte, 32)
		if _, err := rand.Read(sessionSignKey); err != nil {
			log.Printf("session: failed to generate signing key: %v", err)
			sessionSignKey = []byte("insecure-dev-key-please-set-SERENA_WEB_SESSION_SIGNING_KEY")
		}
		log.Printf("session: using ephemeral signing key (dev). Set SERENA_WEB_SESSION_SIGNING_KEY for production.")
	} else {
		sessionSignKey = []byte(key)
	}
	sessionSecure = strings.ToLower(os.Getenv("SERENA_WEB_ENV")) == "prod"
}

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		// persist the cookie just before the first write if anything changed
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// nothing written yet (e.g. HEAD): persist now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData) {
	b, _ := json.Marshal(sd)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sig,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

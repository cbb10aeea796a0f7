package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	xhtml "golang.org/x/net/html"

	"villaserena.it/serena-web/internal/content"
	"villaserena.it/serena-web/internal/forms"
	"villaserena.it/serena-web/internal/i18n"
	"villaserena.it/serena-web/internal/notice"
	"villaserena.it/serena-web/internal/reviews"
	"villaserena.it/serena-web/internal/timing"
	"villaserena.it/serena-web/internal/viewport"
)

// newTestRouter wires the same router main() uses, with per-test state so
// throttle windows and review positions never leak between tests.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	contentDir = "../../content"
	localesDir = "../../locales"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}

	var err error
	site, err = content.Load("../../content/site.yml")
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	i18nBundle, err = i18n.Load("../../locales", "en", []string{"en", "it"})
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}
	bookingForm, err = forms.NewValidator(
		forms.Field{ID: "name", Kind: forms.RequiredText},
		forms.Field{ID: "email", Kind: forms.RequiredEmail},
		forms.Field{ID: "phone", Kind: forms.RequiredText},
		forms.Field{ID: "event_date", Kind: forms.RequiredDate},
		forms.Field{ID: "guests", Kind: forms.RequiredPositiveNumber},
		forms.Field{ID: "event_type", Kind: forms.RequiredText},
	)
	if err != nil {
		t.Fatalf("build booking form: %v", err)
	}

	reviewBoard = reviews.NewBoard(len(site.Reviews), time.Hour)
	notices = notice.NewCenter(time.Hour)
	scrollGate = timing.NewGate(100 * time.Millisecond)
	lazyStrategy = viewport.Deferred
	t.Cleanup(func() {
		reviewBoard.Stop()
		notices.Shutdown()
	})

	return newRouter()
}

func doGet(t *testing.T, srv http.Handler, path, acceptLang string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptLang != "" {
		req.Header.Set("Accept-Language", acceptLang)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// openSession fetches the landing page and returns the cookies plus the CSRF
// token needed for modifying requests.
func openSession(t *testing.T, srv http.Handler) ([]*http.Cookie, string) {
	t.Helper()
	rec := doGet(t, srv, "/", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	token := ""
	for _, c := range cookies {
		if c.Name == "csrf_token" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatalf("missing csrf_token cookie from GET /")
	}
	return cookies, token
}

func doPostForm(t *testing.T, srv http.Handler, path string, form url.Values, cookies []*http.Cookie, csrf string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomeRenders_EN(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">Gallery<") {
		t.Fatalf("expected localized nav label 'Gallery' in body")
	}
	if !strings.Contains(body, `loading="lazy"`) {
		t.Fatalf("expected lazy-loaded gallery images")
	}
	if !strings.Contains(body, `data-slider-interval="8000"`) {
		t.Fatalf("expected slider interval attribute from site config")
	}
	if !strings.Contains(body, "application/ld+json") {
		t.Fatalf("expected structured data on landing page")
	}
}

func TestHomeLocalized_IT(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/?hl=it", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">Galleria<") {
		t.Fatalf("expected Italian nav label 'Galleria' in body")
	}
	if !strings.Contains(body, `lang="it"`) {
		t.Fatalf("expected html lang attribute to follow locale")
	}
}

func TestHomeContactFormStructure(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc, err := xhtml.Parse(rec.Body)
	if err != nil {
		t.Fatalf("parse landing page: %v", err)
	}
	inputs := 0
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == "input" {
			inputs++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	// six booking fields plus the hidden CSRF token
	if inputs != 7 {
		t.Fatalf("expected 7 form inputs, got %d", inputs)
	}
}

func TestSliderFragmentWraps(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/fragments/slider?i=2&dir=next", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `data-index="0"`) {
		t.Fatalf("expected wrap from last slide to first; body=%s", rec.Body.String())
	}

	rec = doGet(t, srv, "/fragments/slider?i=0&dir=prev", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-index="2"`) {
		t.Fatalf("expected wrap from first slide to last; body=%s", rec.Body.String())
	}
}

func TestSliderFragmentRejectsBadIndex(t *testing.T) {
	srv := newTestRouter(t)
	if rec := doGet(t, srv, "/fragments/slider?i=99", "en"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range index, got %d", rec.Code)
	}
	if rec := doGet(t, srv, "/fragments/slider?i=abc", "en"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric index, got %d", rec.Code)
	}
	if rec := doGet(t, srv, "/fragments/slider?dir=sideways", "en"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad direction, got %d", rec.Code)
	}
}

func TestLightboxFragment(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/fragments/lightbox?i=0&nav=next", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `data-index="1"`) {
		t.Fatalf("expected lightbox to advance to image 1; body=%s", rec.Body.String())
	}

	if rec := doGet(t, srv, "/fragments/lightbox?i=99", "en"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range image, got %d", rec.Code)
	}
}

func TestLightboxKeyWhileClosedIgnored(t *testing.T) {
	srv := newTestRouter(t)
	cookies, csrf := openSession(t, srv)
	rec := doPostForm(t, srv, "/fragments/lightbox/key", url.Values{"key": {"Escape"}}, cookies, csrf)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for key while closed, got %d; body=%s", rec.Code, rec.Body.String())
	}
}

func TestLightboxKeyNavigates(t *testing.T) {
	srv := newTestRouter(t)
	cookies, csrf := openSession(t, srv)

	rec := doPostForm(t, srv, "/fragments/lightbox/key", url.Values{"key": {"ArrowRight"}, "i": {"1"}}, cookies, csrf)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	var state struct {
		Open  bool `json:"open"`
		Index int  `json:"index"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !state.Open || state.Index != 2 {
		t.Fatalf("expected open at index 2, got open=%v index=%d", state.Open, state.Index)
	}

	rec = doPostForm(t, srv, "/fragments/lightbox/key", url.Values{"key": {"Escape"}, "i": {"1"}}, cookies, csrf)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if state.Open {
		t.Fatalf("expected Escape to close the lightbox")
	}
}

func TestLayoutFragment(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/fragments/layouts?tab=theater", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="layout-theater"`) {
		t.Fatalf("expected theater panel in fragment; body=%s", body)
	}
	if !strings.Contains(body, `data-active="theater"`) {
		t.Fatalf("expected theater tab marked active; body=%s", body)
	}

	if rec := doGet(t, srv, "/fragments/layouts?tab=ballroom", "en"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown tab, got %d", rec.Code)
	}
}

func TestReviewFragments(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/fragments/reviews", "en")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `data-index="0"`) {
		t.Fatalf("expected board to start at the first review")
	}

	cookies, csrf := openSession(t, srv)
	rec = doPostForm(t, srv, "/fragments/reviews/next", url.Values{}, cookies, csrf)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `data-index="1"`) {
		t.Fatalf("expected manual advance to reach review 1; body=%s", rec.Body.String())
	}
}

func TestVisibilityEndpoint(t *testing.T) {
	srv := newTestRouter(t)
	q := "?scroll=650&vh=800&start_top=1000&start_height=200&end_top=3000&end_height=400"
	rec := doGet(t, srv, "/api/visibility"+q, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	var state struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !state.Visible {
		t.Fatalf("expected banner visible for scroll past half-viewport threshold")
	}
}

func TestVisibilityThrottled(t *testing.T) {
	srv := newTestRouter(t)
	q := "?scroll=0&vh=800&start_top=1000&start_height=200&end_top=3000&end_height=400"
	if rec := doGet(t, srv, "/api/visibility"+q, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected first call to pass, got %d", rec.Code)
	}
	// second call lands inside the same window and is dropped
	if rec := doGet(t, srv, "/api/visibility"+q, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for throttled call, got %d", rec.Code)
	}
}

func TestVisibilityRejectsBadGeometry(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/api/visibility?scroll=abc&vh=800", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed geometry, got %d", rec.Code)
	}
}

func TestContactRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t)
	rec := doPostForm(t, srv, "/contact", url.Values{"name": {"x"}}, nil, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without CSRF token, got %d", rec.Code)
	}
}

func TestContactValidationErrors(t *testing.T) {
	srv := newTestRouter(t)
	cookies, csrf := openSession(t, srv)

	form := url.Values{
		"name":       {"Giulia Bianchi"},
		"email":      {""},
		"phone":      {"+39 333 1234567"},
		"event_date": {""},
		"guests":     {"80"},
		"event_type": {"Wedding"},
	}
	rec := doPostForm(t, srv, "/contact", form, cookies, csrf)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d; body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if got := strings.Count(body, `class="error"`); got != 2 {
		t.Fatalf("expected exactly 2 field errors, got %d; body=%s", got, body)
	}
	if !strings.Contains(body, `value="Giulia Bianchi"`) {
		t.Fatalf("expected entered values preserved on failed submit")
	}
}

func TestContactGuestsMustBePositive(t *testing.T) {
	srv := newTestRouter(t)
	cookies, csrf := openSession(t, srv)

	form := url.Values{
		"name":       {"Giulia Bianchi"},
		"email":      {"giulia@example.com"},
		"phone":      {"+39 333 1234567"},
		"event_date": {"2026-10-10"},
		"guests":     {"0"},
		"event_type": {"Wedding"},
	}
	rec := doPostForm(t, srv, "/contact", form, cookies, csrf)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero guests, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "greater than zero") {
		t.Fatalf("expected guests error message; body=%s", rec.Body.String())
	}
}

func TestContactSuccess(t *testing.T) {
	srv := newTestRouter(t)
	cookies, csrf := openSession(t, srv)

	form := url.Values{
		"name":       {"Giulia Bianchi"},
		"email":      {"giulia@example.com"},
		"phone":      {"+39 333 1234567"},
		"event_date": {"2026-10-10"},
		"guests":     {"80"},
		"event_type": {"Wedding"},
	}
	rec := doPostForm(t, srv, "/contact", form, cookies, csrf)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "form-success") {
		t.Fatalf("expected success confirmation in response")
	}
	if got := len(notices.Active()); got != 1 {
		t.Fatalf("expected one posted notice after success, got %d", got)
	}
}

func TestContentPageFallsBackToEnglish(t *testing.T) {
	srv := newTestRouter(t)
	rec := doGet(t, srv, "/pages/visit?hl=it", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via fallback, got %d; body=%s", rec.Code, rec.Body.String())
	}
	// the intermediate breadcrumb segment is not routable and must not link
	if strings.Contains(rec.Body.String(), `href="/pages"`) {
		t.Fatalf("breadcrumbs must not link to /pages; body=%s", rec.Body.String())
	}

	if rec := doGet(t, srv, "/pages/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown page, got %d", rec.Code)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"villaserena.it/serena-web/internal/content"
	"villaserena.it/serena-web/internal/forms"
	"villaserena.it/serena-web/internal/i18n"
	mw "villaserena.it/serena-web/internal/middleware"
	"villaserena.it/serena-web/internal/notice"
	"villaserena.it/serena-web/internal/reviews"
	"villaserena.it/serena-web/internal/timing"
	"villaserena.it/serena-web/internal/viewport"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentDir   = "content"
	localesDir   = "locales"
	// devMode is set in main() based on env: SERENA_WEB_DEV (preferred) or DEV (fallback)
	devMode bool

	i18nBundle   *i18n.Bundle
	site         *content.Site
	bookingForm  *forms.Validator
	reviewBoard  *reviews.Board
	notices      *notice.Center
	scrollGate   *timing.Gate
	lazyStrategy viewport.Strategy
)

func main() {
	var (
		addr        string
		tmplPath    string
		pubPath     string
		contentPath string
		localesPath string
	)
	// Port resolution: prefer SERENA_WEB_PORT, then Cloud Run's PORT, else 8080
	port := os.Getenv("SERENA_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contentPath, "content", contentDir, "site content directory")
	flag.StringVar(&localesPath, "locales", localesDir, "locale files directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	contentDir = contentPath
	localesDir = localesPath
	devMode = os.Getenv("SERENA_WEB_DEV") != "" || os.Getenv("DEV") != ""

	if err := setup(); err != nil {
		log.Fatalf("setup: %v", err)
	}

	reviewBoard.Start()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("web listening on %s (devMode=%v)", addr, devMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		// cancel every pending timer before tearing the server down
		reviewBoard.Stop()
		notices.Shutdown()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// setup loads content, locales, and templates, and builds the stateful
// components. Any failure here is a configuration error and aborts startup.
func setup() error {
	s, err := content.Load(filepath.Join(contentDir, "site.yml"))
	if err != nil {
		return err
	}
	site = s

	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "it"})
	if err != nil {
		return err
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
		return err
	}

	reviewBoard = reviews.NewBoard(len(site.Reviews), site.Timers.ReviewInterval())
	notices = notice.NewCenter(site.Timers.NoticeTTL())
	scrollGate = timing.NewGate(100 * time.Millisecond)
	// Clients that cannot observe element visibility get every image eagerly.
	lazyStrategy = viewport.ResolveStrategy(os.Getenv("SERENA_WEB_EAGER_IMAGES") == "")

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			return err
		}
		tmplCache = tc
	}
	return nil
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind a trusted proxy RealIP derives the client IP from forwarding
	// headers; only trusted proxies may set them in production.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/pages/{slug}", ContentPageHandler)

	r.Get("/fragments/slider", SliderFrag)
	r.Get("/fragments/lightbox", LightboxFrag)
	r.Post("/fragments/lightbox/key", LightboxKeyHandler)
	r.Get("/fragments/reviews", ReviewFrag)
	r.Post("/fragments/reviews/next", ReviewNextFrag)
	r.Get("/fragments/layouts", LayoutFrag)

	r.With(mw.Throttle(scrollGate)).Get("/api/visibility", VisibilityHandler)

	r.Post("/contact", ContactSubmitHandler)

	return r
}

// Package content loads the site's editorial data: hero slides, gallery
// images, venue layouts, and guest reviews from a YAML file, plus localized
// markdown subpages. Everything is read once at startup; a broken content
// file aborts startup rather than serving a half-empty page.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Text is a bilingual string. English is required; Italian falls back to
// English when absent.
type Text struct {
	EN string `yaml:"en"`
	IT string `yaml:"it"`
}

// In returns the text for lang.
func (t Text) In(lang string) string {
	if lang == "it" && strings.TrimSpace(t.IT) != "" {
		return t.IT
	}
	return t.EN
}

func (t Text) empty() bool { return strings.TrimSpace(t.EN) == "" }

// Venue holds the static facts about the property.
type Venue struct {
	Name    string `yaml:"name"`
	Tagline Text   `yaml:"tagline"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	Address string `yaml:"address"`
	City    string `yaml:"city"`
	URL     string `yaml:"url"`
}

// Slide is one hero slider frame.
type Slide struct {
	Image   string `yaml:"image"`
	Heading Text   `yaml:"heading"`
	Sub     Text   `yaml:"sub"`
}

// Image is one gallery entry.
type Image struct {
	Src   string `yaml:"src"`
	Thumb string `yaml:"thumb"`
	Alt   Text   `yaml:"alt"`
}

// Layout is one venue arrangement shown in the tab switcher.
type Layout struct {
	ID        string `yaml:"id"`
	Name      Text   `yaml:"name"`
	Capacity  int    `yaml:"capacity"`
	PriceFrom int64  `yaml:"price_from"` // EUR minor units
	Summary   Text   `yaml:"summary"`
}

// Review is one guest review rotated through the banner.
type Review struct {
	Author string `yaml:"author"`
	Origin string `yaml:"origin"`
	Rating int    `yaml:"rating"`
	Quote  Text   `yaml:"quote"`
}

// Timers groups the intervals driving timed behavior, in milliseconds.
type Timers struct {
	SliderIntervalMS int `yaml:"slider_interval_ms"`
	ReviewIntervalMS int `yaml:"review_interval_ms"`
	LoaderDismissMS  int `yaml:"loader_dismiss_ms"`
	NoticeTTLMS      int `yaml:"notice_ttl_ms"`
}

// SliderInterval returns the hero slider period.
func (t Timers) SliderInterval() time.Duration {
	return msOrDefault(t.SliderIntervalMS, 8000)
}

// ReviewInterval returns the reviews banner rotation period.
func (t Timers) ReviewInterval() time.Duration {
	return msOrDefault(t.ReviewIntervalMS, 8000)
}

// LoaderDismiss returns how long the hero loading overlay stays up.
func (t Timers) LoaderDismiss() time.Duration {
	return msOrDefault(t.LoaderDismissMS, 2500)
}

// NoticeTTL returns the success-popup lifetime.
func (t Timers) NoticeTTL() time.Duration {
	return msOrDefault(t.NoticeTTLMS, 6000)
}

func msOrDefault(ms int, def int) time.Duration {
	if ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}

// Site is the full content file.
type Site struct {
	Venue   Venue    `yaml:"venue"`
	Timers  Timers   `yaml:"timers"`
	Slides  []Slide  `yaml:"slides"`
	Gallery []Image  `yaml:"gallery"`
	Layouts []Layout `yaml:"layouts"`
	Reviews []Review `yaml:"reviews"`
}

// Load reads and validates the site content file.
func Load(path string) (*Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	var s Site
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("content: invalid %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks that every collection a page feature depends on is present
// and well-formed. Errors are keyed by section.
func (s *Site) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(s.Venue.Name) == "" {
		errs["venue"] = validation.NewError("content.venue_name_missing", "venue name is required")
	}
	if len(s.Slides) == 0 {
		errs["slides"] = validation.NewError("content.slides_missing", "at least one hero slide is required")
	}
	for i, sl := range s.Slides {
		if strings.TrimSpace(sl.Image) == "" || sl.Heading.empty() {
			errs[fmt.Sprintf("slides[%d]", i)] = validation.NewError("content.slide_incomplete", "slide needs an image and an english heading")
			break
		}
	}
	if len(s.Gallery) == 0 {
		errs["gallery"] = validation.NewError("content.gallery_missing", "at least one gallery image is required")
	}
	for i, img := range s.Gallery {
		if strings.TrimSpace(img.Src) == "" {
			errs[fmt.Sprintf("gallery[%d]", i)] = validation.NewError("content.image_src_missing", "gallery image needs a src")
			break
		}
	}
	if len(s.Layouts) == 0 {
		errs["layouts"] = validation.NewError("content.layouts_missing", "at least one layout is required")
	}
	seen := map[string]struct{}{}
	for i, l := range s.Layouts {
		id := strings.TrimSpace(l.ID)
		if id == "" || l.Name.empty() {
			errs[fmt.Sprintf("layouts[%d]", i)] = validation.NewError("content.layout_incomplete", "layout needs an id and an english name")
			break
		}
		if _, dup := seen[id]; dup {
			errs[fmt.Sprintf("layouts[%d]", i)] = validation.NewError("content.layout_duplicate", "layout ids must be unique")
			break
		}
		seen[id] = struct{}{}
	}
	if len(s.Reviews) == 0 {
		errs["reviews"] = validation.NewError("content.reviews_missing", "at least one review is required")
	}
	for i, r := range s.Reviews {
		if r.Rating < 1 || r.Rating > 5 || r.Quote.empty() {
			errs[fmt.Sprintf("reviews[%d]", i)] = validation.NewError("content.review_incomplete", "review needs a 1-5 rating and an english quote")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AverageRating returns the mean review rating, rounded to one decimal.
func (s *Site) AverageRating() float64 {
	if len(s.Reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range s.Reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(s.Reviews))
	return float64(int(avg*10+0.5)) / 10
}

// LayoutIndex returns the position of the layout with the given id, or -1.
func (s *Site) LayoutIndex(id string) int {
	for i, l := range s.Layouts {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsRune(slug, os.PathSeparator) || strings.ContainsRune(slug, '/') {
		return ""
	}
	return slug
}

func pagePath(dir, lang, slug string) string {
	return filepath.Join(dir, "pages", lang, slug+".md")
}

package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no markdown file exists for a page slug in
// any language candidate.
var ErrNotFound = errors.New("content: page not found")

// Page is a rendered markdown subpage.
type Page struct {
	Slug    string
	Lang    string
	Title   string
	Summary string
	Body    template.HTML
}

type pageFrontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

var sanitizer = bluemonday.UGCPolicy()

// LoadPage reads content/pages/<lang>/<slug>.md, falling back to English
// when the requested language has no file. The markdown body is rendered
// and sanitized before it reaches a template.
func LoadPage(dir, slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	candidates := []string{lang}
	if lang != "en" {
		candidates = append(candidates, "en")
	}
	for _, l := range candidates {
		p, err := readPage(dir, slug, l)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

func readPage(dir, slug, lang string) (Page, error) {
	raw, err := os.ReadFile(pagePath(dir, lang, slug))
	if err != nil {
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(raw))
	front := pageFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter for %s/%s: %w", lang, slug, err)
		}
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s/%s: %w", lang, slug, err)
	}
	page := Page{
		Slug:    slug,
		Lang:    lang,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    template.HTML(sanitizer.SanitizeBytes(buf.Bytes())),
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n\r")
		}
	}
	return "", input
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// Package i18n resolves UI strings for the bilingual site. Every piece of
// visible text lives in a per-language JSON dictionary; English is the
// fallback when a key or language is missing.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Bundle holds the loaded dictionaries for the supported languages.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
}

// Load reads <lang>.json for each supported language from dir. The fallback
// language's file must exist; other languages may be absent and will resolve
// through the fallback.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"en", "it"}
	}
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}
	for _, l := range supported {
		b.supported[l] = struct{}{}
		raw, err := os.ReadFile(filepath.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: parse locale %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// Supported returns the supported language codes in sorted order.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// Has reports whether lang is a supported language code.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.supported[lang]
	return ok
}

// T returns the translation for key in lang, falling back to the fallback
// language and finally to the key itself.
func (b *Bundle) T(lang, key string) string {
	if lang != "" {
		if v, ok := b.dict[lang][key]; ok {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Resolve picks the best supported language from an Accept-Language header,
// honoring q-values and original order.
func (b *Bundle) Resolve(acceptLang string) string {
	type pref struct {
		base string
		q    float64
		pos  int
	}
	var prefs []pref
	for i, raw := range strings.Split(acceptLang, ",") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		q := 1.0
		if sc := strings.IndexByte(p, ';'); sc != -1 {
			params := strings.TrimSpace(p[sc+1:])
			p = strings.TrimSpace(p[:sc])
			if strings.HasPrefix(params, "q=") {
				if v, err := parseQValue(strings.TrimPrefix(params, "q=")); err == nil {
					q = v
				}
			}
		}
		// q=0 means "not acceptable" (RFC 9110), never a weak preference
		if q <= 0 {
			continue
		}
		base := p
		if dash := strings.IndexByte(p, '-'); dash != -1 {
			base = p[:dash]
		}
		prefs = append(prefs, pref{base: strings.ToLower(base), q: q, pos: i})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q == prefs[j].q {
			return prefs[i].pos < prefs[j].pos
		}
		return prefs[i].q > prefs[j].q
	})
	for _, p := range prefs {
		if b.Has(p.base) {
			return p.base
		}
	}
	return b.fallback
}

// parseQValue parses a qvalue per RFC 7231, clamped to [0, 1].
func parseQValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, nil
}

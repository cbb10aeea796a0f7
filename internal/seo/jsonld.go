package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// EventVenue returns a schema.org EventVenue payload for the property,
// including an aggregate rating when reviewCount > 0.
func EventVenue(name, url, phone, address, city string, rating float64, reviewCount int) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "EventVenue",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if phone != "" {
		m["telephone"] = phone
	}
	if address != "" {
		addr := map[string]any{"@type": "PostalAddress", "streetAddress": address}
		if city != "" {
			addr["addressLocality"] = city
		}
		addr["addressCountry"] = "IT"
		m["address"] = addr
	}
	if reviewCount > 0 {
		m["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": rating,
			"reviewCount": reviewCount,
			"bestRating":  5,
		}
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// Review returns a schema.org Review payload nested under the venue.
func Review(author, body string, rating int) map[string]any {
	return map[string]any{
		"@type": "Review",
		"author": map[string]any{
			"@type": "Person",
			"name":  author,
		},
		"reviewBody": body,
		"reviewRating": map[string]any{
			"@type":       "Rating",
			"ratingValue": rating,
			"bestRating":  5,
		},
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		li := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		// unlinked crumbs (not separately routable) carry no item URL
		if it.Item != "" {
			li["item"] = it.Item
		}
		el = append(el, li)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

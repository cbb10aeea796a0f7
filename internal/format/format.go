package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats an amount in minor units. Italian output uses the local
// thousands separator and trailing euro sign.
// Example: Currency(450000, "EUR", "it") => "4.500,00 €"
func Currency(minor int64, currency, lang string) string {
	currency = strings.ToUpper(currency)
	neg := minor < 0
	if neg {
		minor = -minor
	}
	major := minor / 100
	cents := minor % 100
	switch currency {
	case "EUR":
		if strings.ToLower(lang) == "it" {
			s := fmt.Sprintf("%s,%02d €", groupThousands(major, "."), cents)
			if neg {
				return "-" + s
			}
			return s
		}
		s := fmt.Sprintf("€%s.%02d", groupThousands(major, ","), cents)
		if neg {
			return "-" + s
		}
		return s
	default:
		s := fmt.Sprintf("%s %s.%02d", currency, groupThousands(major, ","), cents)
		if neg {
			return "-" + s
		}
		return s
	}
}

func groupThousands(n int64, sep string) string {
	s := fmt.Sprintf("%d", n)
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += sep
		}
		out += string(c)
	}
	return out
}

// Date formats a time in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	if strings.ToLower(lang) == "it" {
		return t.Format("02/01/2006")
	}
	return t.Format("Jan 2, 2006")
}

// Guests renders a guest count with its localized unit.
func Guests(n int, lang string) string {
	if strings.ToLower(lang) == "it" {
		if n == 1 {
			return "1 ospite"
		}
		return fmt.Sprintf("%d ospiti", n)
	}
	if n == 1 {
		return "1 guest"
	}
	return fmt.Sprintf("%d guests", n)
}

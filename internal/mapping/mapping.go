// Package mapping holds pure helpers shared by the provider adapters when
// normalizing vendor payloads: tolerant price parsing and URL slug
// derivation. Helpers never fail; malformed input degrades to a zero value
// so a single bad record cannot poison a whole catalog page.
package mapping

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParsePrice converts a vendor price string to a decimal amount.
//
// Feeds emit prices in several shapes: bare numbers ("1234.5"), localized
// strings ("1 234,56 €", "1,234.56"), or symbol-prefixed values ("$12.50").
// Currency symbols, spaces (including non-breaking variants) and grouping
// separators are stripped; the rightmost of '.' and ',' is taken as the
// decimal separator. Anything that still fails to parse yields zero.
func ParsePrice(s string) decimal.Decimal {
	cleaned := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			cleaned = append(cleaned, r)
		case r == '.' || r == ',':
			cleaned = append(cleaned, r)
		case r == '-' && len(cleaned) == 0:
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		return decimal.Zero
	}

	normalized := normalizeSeparators(string(cleaned))
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// normalizeSeparators reduces a digit string with mixed ',' and '.' to a
// canonical form with at most one '.' decimal separator.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the rightmost is the decimal separator, the other
		// is grouping.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
			// A second comma would have been grouping too.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Only commas. A single comma followed by one or two digits is a
		// decimal separator ("12,50"); everything else is grouping.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		// "1.234.567" style grouping: keep only the final separator when it
		// looks decimal, otherwise drop them all.
		if len(s)-lastDot-1 <= 2 {
			head := strings.ReplaceAll(s[:lastDot], ".", "")
			s = head + s[lastDot:]
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

// Slugify derives a URL slug: lowercase ASCII with diacritics folded away
// and every run of other characters collapsed into a single hyphen. The
// result carries no leading or trailing hyphen. An input with no usable
// characters yields the empty string; callers fall back to another field
// (typically the SKU) in that case.
func Slugify(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SlugOrFallback slugifies name and falls back to the (slugified) fallback
// when the name produces nothing.
func SlugOrFallback(name, fallback string) string {
	if slug := Slugify(name); slug != "" {
		return slug
	}
	return Slugify(fallback)
}

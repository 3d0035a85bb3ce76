package domain

import (
	"strings"
	"unicode"
)

// NormalizeSKU prepares a SKU for storage and lookup:
//   - trims surrounding whitespace
//   - converts to uppercase
//   - removes inner whitespace
func NormalizeSKU(sku string) string {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(sku))
	for _, r := range sku {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// NormalizeName trims a display name and compresses runs of spaces into one.
// Case is preserved.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

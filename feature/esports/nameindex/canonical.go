package nameindex

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonicalize folds a name for case, diacritic and punctuation insensitive comparison:
// compatibility-normalized, accents stripped, lowercased, and reduced to letters and digits.
func Canonicalize(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = norm.NFKC.String(name)
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.In(r, unicode.Ll, unicode.Nl, unicode.Nd) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

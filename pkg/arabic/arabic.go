// Package arabic normalizes Arabic text for search and matching.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes the text and removes combining marks, which drops the
// harakat (fatha, damma, kasra, shadda, sukun, tanween) and turns hamzated
// alef forms into bare alef.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns a canonical form of s for comparison: diacritics removed,
// alef/yaa/taa-marbuta variants unified, tatweel dropped, whitespace collapsed
// and Latin letters lowercased. "مُحَمَّد" and "محمد" normalize identically.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		switch r {
		case 'أ', 'إ', 'آ', 'ٱ':
			b.WriteRune('ا')
		case 'ة':
			b.WriteRune('ه')
		case 'ى':
			b.WriteRune('ي')
		case 'ؤ':
			b.WriteRune('و')
		case 'ئ':
			b.WriteRune('ي')
		case 'ـ': // tatweel
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Match reports whether the normalized form of needle is a substring of the
// normalized form of haystack.
func Match(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// Package textnorm strips diacritics from passage text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes each rune canonically, drops combining marks, and
// recomposes, so "café" becomes "cafe". Runes with no decomposition pass
// through unchanged; the function never fails.
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Typographic characters common in encyclopedia prose, mapped to the
// ASCII the user can actually type.
var translit = map[rune]string{
	'‘': "'", // left single quote
	'’': "'", // right single quote
	'‚': "'",
	'“': `"`, // left double quote
	'”': `"`, // right double quote
	'„': `"`,
	'‐': "-", // hyphen
	'‑': "-", // non-breaking hyphen
	'‒': "-",
	'–': "-", // en dash
	'—': "-", // em dash
	'―': "-",
	'−': "-", // minus sign
	'…': "...",
}

// Typeable maps text onto the displayable ASCII range: diacritics are
// stripped via Normalize, typographic punctuation is transliterated,
// exotic whitespace becomes a plain space, and any rune that still has
// no typeable form is dropped.
func Typeable(text string) string {
	var b strings.Builder
	for _, r := range Normalize(text) {
		if s, ok := translit[r]; ok {
			b.WriteString(s)
			continue
		}
		if r >= ' ' && r <= '~' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

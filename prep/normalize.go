package prep

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFKD and removes combining marks, so that
// ç→c, ğ→g, ö→o, ş→s, ü→u regardless of how the source encoded them.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText prepares Turkish/English report text for matching:
// diacritics stripped, lowercased, whitespace collapsed.
// Dotless ı (U+0131) has no NFKD decomposition and is folded by hand,
// as is dotted İ whose lowering would otherwise reintroduce a mark.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.Map(func(r rune) rune {
		switch r {
		case 'ı', 'İ':
			return 'i'
		}
		return r
	}, text)
	if out, _, err := transform.String(stripMarks, text); err == nil {
		text = out
	}
	text = strings.ToLower(text)
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// NormalizeAll normalizes a slice of texts.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = NormalizeText(t)
	}
	return out
}

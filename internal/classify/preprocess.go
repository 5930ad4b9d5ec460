package classify

import (
	"regexp"
	"strings"
)

// Go's \s is ASCII-only; \p{Zs} picks up the full-width space U+3000 that
// OCR output routinely emits between phrase words.
var whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

// Preprocess normalizes text before matching: runs of whitespace, full-width
// spaces included, collapse to a single space and full-width ASCII letters
// and digits narrow to their half-width forms. Full-width Japanese
// characters are left untouched, so a full Unicode-width fold would be too
// aggressive here.
func Preprocess(text string) string {
	if text == "" {
		return ""
	}
	cleaned := whitespaceRe.ReplaceAllString(text, " ")
	cleaned = strings.Map(narrowASCII, cleaned)
	return strings.TrimSpace(cleaned)
}

func narrowASCII(r rune) rune {
	switch {
	case r >= '０' && r <= '９',
		r >= 'Ａ' && r <= 'Ｚ',
		r >= 'ａ' && r <= 'ｚ':
		return r - 0xFEE0
	}
	return r
}

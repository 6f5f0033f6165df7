package hapticvision

import (
	"strings"
	"unicode/utf8"
)

// DefaultWrapWidth is the line width applied to free-text answers.
const DefaultWrapWidth = 87

// WordWrap hard-wraps text every width characters and joins the chunks with
// newlines. Word boundaries are not respected, so a word may be split across
// lines. Characters are counted as runes; an invalid UTF-8 byte counts as one
// character and is copied through unchanged. A non-positive width returns
// text unchanged.
func WordWrap(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	n := utf8.RuneCountInString(text)
	if n <= width {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + n/width)
	start, count := 0, 0
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		count++
		if count == width {
			if start > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(text[start:i])
			start, count = i, 0
		}
	}
	if start < len(text) {
		sb.WriteByte('\n')
		sb.WriteString(text[start:])
	}
	return sb.String()
}

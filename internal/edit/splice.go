package edit

import (
	"fmt"
	"strings"

	"github.com/bethropolis/stmtree/internal/statement"
)

// Apply returns text with e applied. A full-text edit returns e.Text unchanged.
func Apply(text string, e statement.Edit) (string, error) {
	if e.Range == nil {
		return e.Text, nil
	}

	start, end, err := ByteSpan(text, e.Range.Start, e.Range.End)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text) - (end - start) + len(e.Text))
	b.WriteString(text[:start])
	b.WriteString(e.Text)
	b.WriteString(text[end:])
	return b.String(), nil
}

// ByteSpan converts the character range [startChar, endChar) of text to byte offsets.
func ByteSpan(text string, startChar, endChar int) (int, int, error) {
	if startChar < 0 || endChar < startChar {
		return 0, 0, fmt.Errorf("%w: [%d,%d)", ErrInvalidRange, startChar, endChar)
	}

	start, end := -1, -1
	chars := 0
	for idx := range text {
		if chars == startChar {
			start = idx
		}
		if chars == endChar {
			end = idx
			break
		}
		chars++
	}
	if end < 0 && chars == endChar {
		end = len(text)
		if start < 0 && chars == startChar {
			start = len(text)
		}
	}
	if start < 0 || end < 0 {
		return 0, 0, fmt.Errorf("%w: [%d,%d) in text of %d characters",
			ErrOutOfRange, startChar, endChar, chars)
	}
	return start, end, nil
}

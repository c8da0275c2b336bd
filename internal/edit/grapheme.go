package edit

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// SplitsCluster reports whether the character index charIdx falls strictly inside
// a grapheme cluster of text, e.g. between a letter and its combining accent or
// between the two runes of "\r\n".
func SplitsCluster(text string, charIdx int) bool {
	if charIdx <= 0 {
		return false
	}
	g := uniseg.NewGraphemes(text)
	chars := 0
	for g.Next() {
		n := utf8.RuneCountInString(g.Str())
		if charIdx < chars+n {
			return charIdx > chars
		}
		chars += n
	}
	return false
}

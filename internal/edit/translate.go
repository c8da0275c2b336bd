package edit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/stmtree/internal/logger"
	"github.com/bethropolis/stmtree/internal/types"
)

// location is a position in a text as a byte offset plus row and byte column.
type location struct {
	offset int
	row    int
	column int
}

// Compute returns the edit descriptor for replacing the characters
// [startChar, endChar) of text with replacement.
//
// endChar may equal the character count of text, which addresses the position
// just past the last character (appending).
func Compute(text string, startChar, endChar int, replacement string) (types.Edit, error) {
	if startChar < 0 || endChar < startChar {
		return types.Edit{}, fmt.Errorf("%w: [%d,%d)", ErrInvalidRange, startChar, endChar)
	}

	var (
		start, end           location
		foundStart, foundEnd bool
		chars, row, lineHead int
	)
	for idx, r := range text {
		if chars == startChar {
			start = location{offset: idx, row: row, column: idx - lineHead}
			foundStart = true
		}
		if chars == endChar {
			end = location{offset: idx, row: row, column: idx - lineHead}
			foundEnd = true
			break
		}
		if r == '\n' {
			row++
			lineHead = idx + 1
		}
		chars++
	}

	// The scan never visits the position after the last character.
	tail := location{offset: len(text), row: row, column: len(text) - lineHead}
	if !foundStart && chars == startChar {
		start, foundStart = tail, true
	}
	if !foundEnd && chars == endChar {
		end, foundEnd = tail, true
	}
	if !foundStart || !foundEnd {
		return types.Edit{}, fmt.Errorf("%w: [%d,%d) in text of %d characters",
			ErrOutOfRange, startChar, endChar, chars)
	}

	newEnd := advance(start, replacement)

	var conv converter
	e := types.Edit{
		StartByte:   conv.u32(start.offset),
		OldEndByte:  conv.u32(end.offset),
		NewEndByte:  conv.u32(newEnd.offset),
		StartPoint:  conv.point(start),
		OldEndPoint: conv.point(end),
		NewEndPoint: conv.point(newEnd),
	}
	if conv.err != nil {
		return types.Edit{}, conv.err
	}

	logger.DebugTagf("edit", "Compute: chars [%d,%d) -> %s", startChar, endChar, e)
	return e, nil
}

// advance returns the location reached after writing s at from.
func advance(from location, s string) location {
	end := location{offset: from.offset + len(s), row: from.row}
	if lines := strings.Count(s, "\n"); lines > 0 {
		end.row += lines
		end.column = len(s) - (strings.LastIndexByte(s, '\n') + 1)
	} else {
		end.column = from.column + len(s)
	}
	return end
}

// converter narrows ints to tree-sitter's uint32 fields, keeping the first failure.
type converter struct {
	err error
}

func (c *converter) u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("%w: %d", ErrTooLarge, n)
	}
	return v
}

func (c *converter) point(l location) sitter.Point {
	return sitter.Point{Row: c.u32(l.row), Column: c.u32(l.column)}
}

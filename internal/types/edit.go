package types

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Edit describes a text mutation in the coordinates tree-sitter's Tree.Edit expects.
// Byte fields are offsets into the statement text; points are (row, byte column).
type Edit struct {
	StartByte   uint32       // Start byte of the edit
	OldEndByte  uint32       // End byte of the replaced text
	NewEndByte  uint32       // End byte of the replacement
	StartPoint  sitter.Point // Start position (row, column)
	OldEndPoint sitter.Point // End position of the replaced text
	NewEndPoint sitter.Point // End position of the replacement
}

// Input converts the edit to the form accepted by (*sitter.Tree).Edit.
func (e Edit) Input() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartByte,
		OldEndIndex: e.OldEndByte,
		NewEndIndex: e.NewEndByte,
		StartPoint:  e.StartPoint,
		OldEndPoint: e.OldEndPoint,
		NewEndPoint: e.NewEndPoint,
	}
}

// IsInsert reports whether the edit replaces an empty span.
func (e Edit) IsInsert() bool {
	return e.StartByte == e.OldEndByte
}

func (e Edit) String() string {
	return fmt.Sprintf("bytes [%d,%d)->[%d,%d) points %s->%s/%s",
		e.StartByte, e.OldEndByte, e.StartByte, e.NewEndByte,
		pointString(e.StartPoint), pointString(e.OldEndPoint), pointString(e.NewEndPoint))
}

func pointString(p sitter.Point) string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

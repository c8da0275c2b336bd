package edit

import (
	"errors"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/stmtree/internal/statement"
	"github.com/bethropolis/stmtree/internal/types"
)

func pt(row, col uint32) sitter.Point {
	return sitter.Point{Row: row, Column: col}
}

func TestComputeReplaceWithinLine(t *testing.T) {
	e, err := Compute("select 1;\nselect 2;", 7, 8, "42")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := types.Edit{
		StartByte:   7,
		OldEndByte:  8,
		NewEndByte:  9,
		StartPoint:  pt(0, 7),
		OldEndPoint: pt(0, 8),
		NewEndPoint: pt(0, 9),
	}
	if e != want {
		t.Errorf("got %s, want %s", e, want)
	}
}

func TestComputeMultiLineReplacement(t *testing.T) {
	e, err := Compute("ab", 1, 1, "x\ny")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if e.NewEndPoint != pt(1, 1) {
		t.Errorf("expected new end point (1:1), got %v", e.NewEndPoint)
	}
	if e.StartByte != 1 || e.OldEndByte != 1 || e.NewEndByte != 4 {
		t.Errorf("unexpected byte offsets: %s", e)
	}
	if !e.IsInsert() {
		t.Error("an empty range should be an insertion")
	}
}

func TestComputeEndOfTextInsertion(t *testing.T) {
	text := "select 1;"
	e, err := Compute(text, 9, 9, " -- done")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := types.Edit{
		StartByte:   9,
		OldEndByte:  9,
		NewEndByte:  17,
		StartPoint:  pt(0, 9),
		OldEndPoint: pt(0, 9),
		NewEndPoint: pt(0, 17),
	}
	if e != want {
		t.Errorf("got %s, want %s", e, want)
	}
}

func TestComputeEmptyText(t *testing.T) {
	e, err := Compute("", 0, 0, "select 1;")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if e.StartByte != 0 || e.OldEndByte != 0 || e.NewEndByte != 9 || e.NewEndPoint != pt(0, 9) {
		t.Errorf("unexpected edit: %s", e)
	}
}

func TestComputeSecondLine(t *testing.T) {
	e, err := Compute("select 1;\nselect 2;", 17, 18, "3")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if e.StartByte != 17 || e.StartPoint != pt(1, 7) || e.OldEndPoint != pt(1, 8) {
		t.Errorf("unexpected edit: %s", e)
	}
}

func TestComputeDeleteAcrossLines(t *testing.T) {
	e, err := Compute("a\nbc\nd", 1, 5, "")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	want := types.Edit{
		StartByte:   1,
		OldEndByte:  5,
		NewEndByte:  1,
		StartPoint:  pt(0, 1),
		OldEndPoint: pt(2, 0),
		NewEndPoint: pt(0, 1),
	}
	if e != want {
		t.Errorf("got %s, want %s", e, want)
	}
}

func TestComputeColumnsAreBytes(t *testing.T) {
	// 'ü' takes two bytes, so everything after it on the line shifts by one.
	e, err := Compute("select 'ü', 1;", 12, 13, "2")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if e.StartByte != 13 || e.OldEndByte != 14 || e.NewEndByte != 14 {
		t.Errorf("unexpected byte offsets: %s", e)
	}
	if e.StartPoint != pt(0, 13) || e.NewEndPoint != pt(0, 14) {
		t.Errorf("expected byte columns, got %s", e)
	}
}

func TestComputeMultiByteReplacement(t *testing.T) {
	e, err := Compute("ab", 1, 1, "ü\nñé")
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if e.NewEndByte != 8 {
		t.Errorf("expected new end byte 8, got %d", e.NewEndByte)
	}
	if e.NewEndPoint != pt(1, 4) {
		t.Errorf("expected new end point (1:4), got %v", e.NewEndPoint)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       error
	}{
		{"negative start", -1, 1, ErrInvalidRange},
		{"start after end", 2, 1, ErrInvalidRange},
		{"end past text", 1, 3, ErrOutOfRange},
		{"start past text", 3, 3, ErrOutOfRange},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute("ab", tt.start, tt.end, "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// pointAt returns the row and byte column of offset in text.
func pointAt(text string, offset int) sitter.Point {
	prefix := text[:offset]
	row := strings.Count(prefix, "\n")
	col := offset - (strings.LastIndexByte(prefix, '\n') + 1)
	return pt(uint32(row), uint32(col))
}

// Every descriptor must agree with the texts before and after Apply.
func TestComputeAgreesWithApply(t *testing.T) {
	texts := []string{
		"",
		"select 1;",
		"select 1;\nselect 2;",
		"select 'ü',\n  'naïve' from t;\n",
		"a\r\nb",
	}
	replacements := []string{"", "x", "42", "ö", "x\ny", "\n", "é\nzz\n"}

	for _, text := range texts {
		n := len([]rune(text))
		for start := 0; start <= n; start++ {
			for end := start; end <= n; end++ {
				for _, repl := range replacements {
					e, err := Compute(text, start, end, repl)
					if err != nil {
						t.Fatalf("Compute(%q, %d, %d, %q): %v", text, start, end, repl, err)
					}
					updated, err := Apply(text, statement.Edit{Range: &statement.Range{Start: start, End: end}, Text: repl})
					if err != nil {
						t.Fatalf("Apply: %v", err)
					}

					if int(e.NewEndByte-e.StartByte) != len(repl) {
						t.Errorf("%q [%d,%d) %q: new span %d bytes, want %d", text, start, end, repl, e.NewEndByte-e.StartByte, len(repl))
					}
					if updated[:e.StartByte] != text[:e.StartByte] {
						t.Errorf("%q [%d,%d): prefix mismatch", text, start, end)
					}
					if updated[e.NewEndByte:] != text[e.OldEndByte:] {
						t.Errorf("%q [%d,%d) %q: suffix mismatch", text, start, end, repl)
					}
					if got := pointAt(text, int(e.StartByte)); got != e.StartPoint {
						t.Errorf("%q [%d,%d): start point %v, want %v", text, start, end, e.StartPoint, got)
					}
					if got := pointAt(text, int(e.OldEndByte)); got != e.OldEndPoint {
						t.Errorf("%q [%d,%d): old end point %v, want %v", text, start, end, e.OldEndPoint, got)
					}
					if got := pointAt(updated, int(e.NewEndByte)); got != e.NewEndPoint {
						t.Errorf("%q [%d,%d) %q: new end point %v, want %v", text, start, end, repl, e.NewEndPoint, got)
					}
				}
			}
		}
	}
}

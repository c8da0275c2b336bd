// Package statement defines the identity and change records that drive the tree cache.
package statement

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is the stable identity of one statement. It is assigned once and does not
// change when the statement's text is edited.
type ID uuid.UUID

// NewID returns a fresh random statement identifier.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical UUID string form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid statement id %q: %w", s, err)
	}
	return ID(u), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id was never assigned.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Ref identifies a statement together with its full text at a point in time.
type Ref struct {
	ID   ID
	Text string
}

// NewRef creates a Ref for a new statement with a fresh ID.
func NewRef(text string) Ref {
	return Ref{ID: NewID(), Text: text}
}

// Same reports whether r and other name the same statement with the same text.
func (r Ref) Same(other Ref) bool {
	return r.ID == other.ID && r.Text == other.Text
}

func (r Ref) String() string {
	return fmt.Sprintf("%s %q", r.ID, r.Text)
}

// Range is a half-open [Start, End) span of character (rune) indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of characters covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether r covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Edit describes one text mutation. A nil Range means Text is the whole initial
// text of the statement; otherwise the characters in Range are replaced by Text.
type Edit struct {
	Range *Range
	Text  string
}

// IsFullText reports whether e carries the whole statement text.
func (e Edit) IsFullText() bool {
	return e.Range == nil
}

func (e Edit) String() string {
	if e.Range == nil {
		return fmt.Sprintf("Full(%q)", e.Text)
	}
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.Text)
}

// Change pairs a statement, in its state before the change, with the edit to apply.
// A nil Edit removes the statement.
type Change struct {
	Statement Ref
	Edit      *Edit
}

// Insert returns the change that adds ref with its full text.
func Insert(ref Ref) Change {
	return Change{Statement: ref, Edit: &Edit{Text: ref.Text}}
}

// Replace returns the change that replaces the characters [start, end) of ref.Text.
func Replace(ref Ref, start, end int, text string) Change {
	return Change{Statement: ref, Edit: &Edit{Range: &Range{Start: start, End: end}, Text: text}}
}

// Delete returns the change that removes ref.
func Delete(ref Ref) Change {
	return Change{Statement: ref}
}

// Kind classifies a change by its payload.
type Kind uint8

const (
	KindDelete Kind = iota
	KindInsert
	KindEdit
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	case KindInsert:
		return "insert"
	case KindEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Kind returns how c is dispatched.
func (c Change) Kind() Kind {
	switch {
	case c.Edit == nil:
		return KindDelete
	case c.Edit.Range == nil:
		return KindInsert
	default:
		return KindEdit
	}
}

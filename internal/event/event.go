// internal/event/event.go
package event

import (
	"github.com/bethropolis/stmtree/internal/statement"
	"github.com/bethropolis/stmtree/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeTreeInserted // A statement was parsed from scratch and cached
	TypeTreeUpdated  // A cached tree was incrementally reparsed after an edit
	TypeTreeRemoved  // A statement's tree was dropped from the cache
	TypeChangeFailed // A change could not be applied
)

// String returns a string representation of the event type.
func (t Type) String() string {
	switch t {
	case TypeTreeInserted:
		return "tree-inserted"
	case TypeTreeUpdated:
		return "tree-updated"
	case TypeTreeRemoved:
		return "tree-removed"
	case TypeChangeFailed:
		return "change-failed"
	default:
		return "unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// TreeChangedData accompanies TypeTreeInserted, TypeTreeUpdated and TypeTreeRemoved.
type TreeChangedData struct {
	Statement statement.ID
	Text      string      // Text the tree now reflects; empty on removal
	Edit      *types.Edit // Descriptor applied for an update, nil otherwise
}

// ChangeFailedData accompanies TypeChangeFailed.
type ChangeFailedData struct {
	Statement statement.ID
	Kind      statement.Kind
	Err       error
}

package coordinator

import "errors"

// ErrInconsistentState indicates a change that does not fit the cached state: an
// edit for a statement that was never inserted (or was removed), or an edit whose
// pre-edit text differs from the text of the cached tree.
var ErrInconsistentState = errors.New("inconsistent cache state")

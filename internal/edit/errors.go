package edit

import "errors"

// Errors returned when an edit cannot be translated.
var (
	// ErrInvalidRange indicates a negative index or a start after the end.
	ErrInvalidRange = errors.New("invalid character range")

	// ErrOutOfRange indicates an index past the end of the text.
	ErrOutOfRange = errors.New("character index out of range")

	// ErrTooLarge indicates an offset that does not fit tree-sitter's uint32 indices.
	ErrTooLarge = errors.New("offset exceeds parser limits")
)

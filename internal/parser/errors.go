package parser

import (
	"errors"
	"fmt"
)

// Errors returned by the parsing engine.
var (
	// ErrParseFailure indicates the engine produced no usable tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrSyntax indicates a strict engine rejected a tree containing error nodes.
	ErrSyntax = errors.New("syntax error in tree")

	// ErrUnknownGrammar indicates no grammar is registered under a name.
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// ParseError describes a failed parse. It matches ErrParseFailure with errors.Is.
type ParseError struct {
	Grammar string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s grammar: %v", ErrParseFailure, e.Grammar, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

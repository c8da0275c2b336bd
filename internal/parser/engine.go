// Package parser wraps a single tree-sitter parser behind a lock so that it can be
// shared by every statement of a document.
//
// Parsing is the bottleneck resource of the tree cache: every full parse and every
// incremental reparse, for any statement, runs while holding the engine's lock.
// Throughput is therefore that of one parser regardless of how many goroutines
// submit changes.
package parser

import (
	"context"
	"errors"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/stmtree/internal/logger"
)

// Engine is a tree-sitter parser shared by concurrent callers.
type Engine struct {
	mu      sync.Mutex
	parser  *sitter.Parser
	grammar *Grammar
	strict  bool
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithStrict makes Parse reject trees that contain error or missing nodes.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// NewEngine creates an engine for g.
func NewEngine(g *Grammar, opts ...Option) (*Engine, error) {
	if g == nil || g.Language == nil {
		return nil, &ParseError{Grammar: "<nil>", Err: ErrUnknownGrammar}
	}
	p := sitter.NewParser()
	p.SetLanguage(g.Language)

	e := &Engine{parser: p, grammar: g}
	for _, opt := range opts {
		opt(e)
	}
	logger.DebugTagf("parser", "Engine created for grammar %s (strict=%v)", g.Name, e.strict)
	return e, nil
}

// NewEngineByName creates an engine for the registered grammar called name.
func NewEngineByName(name string, opts ...Option) (*Engine, error) {
	g, err := LookupGrammar(name)
	if err != nil {
		return nil, err
	}
	return NewEngine(g, opts...)
}

// Grammar returns the grammar the engine was built with.
func (e *Engine) Grammar() *Grammar {
	return e.grammar
}

// Parse parses src. When old is non-nil it must already carry every edit made
// since it was produced; unchanged subtrees are then reused.
// The caller owns the returned tree.
func (e *Engine) Parse(ctx context.Context, src []byte, old *sitter.Tree) (*sitter.Tree, error) {
	e.mu.Lock()
	tree, err := e.parser.ParseCtx(ctx, old, src)
	if err != nil || tree == nil {
		// A cancelled or aborted parse leaves parser state behind.
		e.parser.Reset()
	}
	e.mu.Unlock()

	if err != nil {
		logger.WarnTagf("parser", "Tree-sitter parsing error: %v", err)
		return nil, &ParseError{Grammar: e.grammar.Name, Err: err}
	}
	if tree == nil {
		return nil, &ParseError{Grammar: e.grammar.Name, Err: errors.New("parser returned no tree")}
	}
	if e.strict && tree.RootNode().HasError() {
		tree.Close()
		return nil, &ParseError{Grammar: e.grammar.Name, Err: ErrSyntax}
	}
	return tree, nil
}

// Close releases the underlying parser.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parser.Close()
}

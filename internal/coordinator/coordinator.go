package coordinator

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/bethropolis/stmtree/internal/cache"
	"github.com/bethropolis/stmtree/internal/edit"
	"github.com/bethropolis/stmtree/internal/event"
	"github.com/bethropolis/stmtree/internal/logger"
	"github.com/bethropolis/stmtree/internal/parser"
	"github.com/bethropolis/stmtree/internal/statement"
	"github.com/bethropolis/stmtree/internal/types"
)

// DefaultWorkers bounds ProcessStreams when no worker count is configured.
const DefaultWorkers = 4

// Parser is the incremental parsing primitive. Implementations must be safe for
// concurrent use; *parser.Engine is.
type Parser interface {
	Parse(ctx context.Context, src []byte, old *sitter.Tree) (*sitter.Tree, error)
}

// Coordinator owns the statement tree cache.
type Coordinator struct {
	parser  Parser
	store   *cache.Store
	events  *event.Manager
	shards  int
	workers int
}

// Option configures a Coordinator during creation.
type Option func(*Coordinator)

// WithEvents dispatches tree lifecycle events on m.
func WithEvents(m *event.Manager) Option {
	return func(c *Coordinator) {
		c.events = m
	}
}

// WithShards sets the number of cache shards.
func WithShards(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.shards = n
		}
	}
}

// WithWorkers bounds how many streams ProcessStreams runs at once.
func WithWorkers(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New creates a coordinator that parses with p.
func New(p Parser, opts ...Option) *Coordinator {
	c := &Coordinator{
		parser:  p,
		shards:  cache.DefaultShards,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = cache.New(c.shards)
	return c
}

// ProcessChanges applies changes in order and reports the outcome of each.
func (c *Coordinator) ProcessChanges(ctx context.Context, changes []statement.Change) Report {
	report := Report{Results: make([]Result, 0, len(changes))}
	for _, ch := range changes {
		err := ctx.Err()
		if err == nil {
			err = c.apply(ctx, ch)
		}
		if err != nil {
			logger.WarnTagf("coordinator", "Change %s for statement %s failed: %v", ch.Kind(), ch.Statement.ID, err)
			c.events.Dispatch(event.TypeChangeFailed, event.ChangeFailedData{
				Statement: ch.Statement.ID,
				Kind:      ch.Kind(),
				Err:       err,
			})
		}
		report.Results = append(report.Results, Result{Statement: ch.Statement.ID, Kind: ch.Kind(), Err: err})
	}
	return report
}

// ProcessStreams runs independent change streams concurrently, each in its own
// order, and returns one report per stream. Streams must not share statements.
func (c *Coordinator) ProcessStreams(ctx context.Context, streams ...[]statement.Change) ([]Report, error) {
	reports := make([]Report, len(streams))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, stream := range streams {
		i, stream := i, stream
		g.Go(func() error {
			reports[i] = c.ProcessChanges(ctx, stream)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, ctx.Err()
}

func (c *Coordinator) apply(ctx context.Context, ch statement.Change) error {
	switch ch.Kind() {
	case statement.KindDelete:
		c.remove(ch.Statement.ID)
		return nil
	case statement.KindInsert:
		return c.insert(ctx, ch.Statement.ID, ch.Edit.Text)
	default:
		return c.update(ctx, ch.Statement, *ch.Edit)
	}
}

func (c *Coordinator) remove(id statement.ID) {
	if !c.store.Delete(id) {
		logger.DebugTagf("coordinator", "Remove: statement %s not cached, nothing to do", id)
		return
	}
	c.events.Dispatch(event.TypeTreeRemoved, event.TreeChangedData{Statement: id})
}

func (c *Coordinator) insert(ctx context.Context, id statement.ID, text string) error {
	tree, err := c.parser.Parse(ctx, []byte(text), nil)
	if err != nil {
		return parseFailure(err)
	}
	c.store.Put(id, tree, text)

	logger.DebugTagf("coordinator", "Inserted statement %s (%d bytes)", id, len(text))
	c.events.Dispatch(event.TypeTreeInserted, event.TreeChangedData{Statement: id, Text: text})
	return nil
}

func (c *Coordinator) update(ctx context.Context, ref statement.Ref, e statement.Edit) error {
	entry, ok := c.store.Get(ref.ID)
	if !ok {
		return fmt.Errorf("%w: edit %s for unknown statement %s", ErrInconsistentState, e, ref.ID)
	}

	desc, text, err := c.reparse(ctx, entry, ref, e)
	if err != nil {
		return err
	}

	c.events.Dispatch(event.TypeTreeUpdated, event.TreeChangedData{Statement: ref.ID, Text: text, Edit: &desc})
	return nil
}

// reparse applies e to the entry while holding its lock. The entry is only
// modified once the new tree exists.
func (c *Coordinator) reparse(ctx context.Context, entry *cache.Entry, ref statement.Ref, e statement.Edit) (types.Edit, string, error) {
	entry.Lock()
	defer entry.Unlock()

	if !entry.Live() {
		return types.Edit{}, "", fmt.Errorf("%w: statement %s was removed", ErrInconsistentState, ref.ID)
	}
	if entry.Text() != ref.Text {
		return types.Edit{}, "", fmt.Errorf("%w: statement %s: edit is based on text that differs from the cached tree",
			ErrInconsistentState, ref.ID)
	}

	r := *e.Range
	if edit.SplitsCluster(ref.Text, r.Start) || edit.SplitsCluster(ref.Text, r.End) {
		logger.WarnTagf("edit", "Edit %s on statement %s splits a grapheme cluster", e, ref.ID)
	}

	desc, err := edit.Compute(ref.Text, r.Start, r.End, e.Text)
	if err != nil {
		return types.Edit{}, "", err
	}
	text, err := edit.Apply(ref.Text, e)
	if err != nil {
		return types.Edit{}, "", err
	}

	base := entry.Tree().Copy()
	base.Edit(desc.Input())
	tree, err := c.parser.Parse(ctx, []byte(text), base)
	base.Close()
	if err != nil {
		return types.Edit{}, "", parseFailure(err)
	}

	entry.Replace(tree, text)
	logger.DebugTagf("coordinator", "Updated statement %s with %s", ref.ID, desc)
	return desc, text, nil
}

// parseFailure makes sure a parser error matches parser.ErrParseFailure.
func parseFailure(err error) error {
	if errors.Is(err, parser.ErrParseFailure) {
		return err
	}
	return &parser.ParseError{Grammar: "unknown", Err: err}
}

// Lookup returns a copy of the current tree of id. The caller owns the copy and
// should Close it.
func (c *Coordinator) Lookup(id statement.ID) (*sitter.Tree, bool) {
	entry, ok := c.store.Get(id)
	if !ok {
		return nil, false
	}
	entry.Lock()
	defer entry.Unlock()
	if !entry.Live() {
		return nil, false
	}
	return entry.Tree().Copy(), true
}

// Text returns the text the cached tree of id was parsed from.
func (c *Coordinator) Text(id statement.ID) (string, bool) {
	entry, ok := c.store.Get(id)
	if !ok {
		return "", false
	}
	entry.Lock()
	defer entry.Unlock()
	if !entry.Live() {
		return "", false
	}
	return entry.Text(), true
}

// Len returns the number of cached statements.
func (c *Coordinator) Len() int {
	return c.store.Len()
}

// Close drops every cached tree. The parser is owned by the caller.
func (c *Coordinator) Close() {
	c.store.Clear()
}

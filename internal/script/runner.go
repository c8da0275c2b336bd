package script

import (
	"context"
	"sort"

	"github.com/bethropolis/stmtree/internal/coordinator"
	"github.com/bethropolis/stmtree/internal/edit"
	"github.com/bethropolis/stmtree/internal/logger"
	"github.com/bethropolis/stmtree/internal/statement"
)

// Named pairs a script-local statement name with its current reference.
type Named struct {
	Name string
	Ref  statement.Ref
}

// BatchResult holds the coordinator's report for one batch. Names[i] is the
// statement name of Report.Results[i].
type BatchResult struct {
	Names  []string
	Report coordinator.Report
}

// Runner replays scripts through a coordinator, playing the host: it owns the
// statement texts and assigns statement IDs.
type Runner struct {
	coord *coordinator.Coordinator
	refs  map[string]statement.Ref
}

// NewRunner creates a runner over c.
func NewRunner(c *coordinator.Coordinator) *Runner {
	return &Runner{
		coord: c,
		refs:  make(map[string]statement.Ref),
	}
}

// Run replays every batch of s in order. It stops early only if ctx is done.
func (r *Runner) Run(ctx context.Context, s *Script) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(s.Batches))
	for i, b := range s.Batches {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := r.RunBatch(ctx, b)
		if failed := res.Report.Failed(); len(failed) > 0 {
			logger.WarnTagf("script", "Batch %d: %d of %d changes failed", i+1, len(failed), len(b.Changes))
		}
		results = append(results, res)
	}
	return results, nil
}

// RunBatch turns b into statement changes and processes them as one batch.
// Every step of b must pass Validate.
//
// Within the batch each step is built against the text the previous steps
// should have produced. Afterwards the runner adopts whatever the coordinator
// actually holds, so a failed change does not leave the runner out of sync.
func (r *Runner) RunBatch(ctx context.Context, b Batch) BatchResult {
	pending := make(map[string]statement.Ref, len(r.refs))
	for name, ref := range r.refs {
		pending[name] = ref
	}
	touched := make(map[string]statement.ID)

	changes := make([]statement.Change, 0, len(b.Changes))
	names := make([]string, 0, len(b.Changes))
	for _, step := range b.Changes {
		ref, ok := pending[step.Statement]
		if !ok {
			ref = statement.NewRef("")
		}

		var ch statement.Change
		switch step.Op {
		case OpInsert:
			ref.Text = step.Text
			ch = statement.Insert(ref)
			pending[step.Statement] = ref
		case OpDelete:
			ch = statement.Delete(ref)
			delete(pending, step.Statement)
		default:
			ch = statement.Replace(ref, *step.Start, *step.End, step.Text)
			if next, err := edit.Apply(ref.Text, *ch.Edit); err == nil {
				ref.Text = next
			}
			pending[step.Statement] = ref
		}

		touched[step.Statement] = ref.ID
		changes = append(changes, ch)
		names = append(names, step.Statement)
	}

	report := r.coord.ProcessChanges(ctx, changes)

	for name, id := range touched {
		if text, ok := r.coord.Text(id); ok {
			r.refs[name] = statement.Ref{ID: id, Text: text}
		} else {
			delete(r.refs, name)
		}
	}
	return BatchResult{Names: names, Report: report}
}

// Statements returns the live statements sorted by name.
func (r *Runner) Statements() []Named {
	result := make([]Named, 0, len(r.refs))
	for name, ref := range r.refs {
		result = append(result, Named{Name: name, Ref: ref})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Lookup returns the current reference of the statement called name.
func (r *Runner) Lookup(name string) (statement.Ref, bool) {
	ref, ok := r.refs[name]
	return ref, ok
}

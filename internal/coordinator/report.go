package coordinator

import (
	"errors"
	"fmt"

	"github.com/bethropolis/stmtree/internal/statement"
)

// Result is the outcome of one change.
type Result struct {
	Statement statement.ID
	Kind      statement.Kind
	Err       error
}

// OK reports whether the change was applied.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report holds the results of one batch, in submission order.
type Report struct {
	Results []Result
}

// Failed returns the results of changes that were not applied.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins the errors of every failed change, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("statement %s (%s): %w", res.Statement, res.Kind, res.Err))
	}
	return errors.Join(errs...)
}

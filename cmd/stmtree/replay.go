package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/stmtree/internal/event"
	"github.com/bethropolis/stmtree/internal/logger"
	"github.com/bethropolis/stmtree/internal/script"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a change script and print the resulting trees",
	Long: `Replay loads a change script (.toml, .yaml or .yml), applies its batches in
order and prints every failed change followed by each statement's final tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Bool("quiet", false, "only print failures")
}

func runReplay(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	s, err := script.Load(args[0])
	if err != nil {
		return err
	}

	events := event.NewManager()
	for _, t := range []event.Type{event.TypeTreeInserted, event.TypeTreeUpdated, event.TypeTreeRemoved} {
		events.Subscribe(t, func(e event.Event) {
			if data, ok := e.Data.(event.TreeChangedData); ok {
				logger.DebugTagf("replay", "%s: statement %s", e.Type, data.Statement)
			}
		})
	}

	c, release, err := newCoordinator(events)
	if err != nil {
		return err
	}
	defer release()

	runner := script.NewRunner(c)
	results, err := runner.Run(cmd.Context(), s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failures := 0
	for i, res := range results {
		for j, r := range res.Report.Results {
			if r.OK() {
				continue
			}
			failures++
			fmt.Fprintf(out, "%s batch %d change %d (%s %s): %v\n",
				errorColor.Sprint("FAIL"), i+1, j+1, r.Kind, nameColor.Sprint(res.Names[j]), r.Err)
		}
	}

	if !quiet {
		for _, st := range runner.Statements() {
			tree, ok := c.Lookup(st.Ref.ID)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s %s\n", nameColor.Sprint(st.Name), detailColor.Sprintf("%q", st.Ref.Text))
			printTree(out, tree)
			tree.Close()
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d change(s) failed", failures)
	}
	if !quiet {
		fmt.Fprintln(out, okColor.Sprintf("%d batch(es) applied", len(results)))
	}
	return nil
}

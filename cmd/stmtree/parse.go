package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/stmtree/internal/statement"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a statement and print its syntax tree",
	Long:  `Parse reads one statement from file, or stdin when file is omitted or "-", and prints its tree as an S-expression.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	c, release, err := newCoordinator(nil)
	if err != nil {
		return err
	}
	defer release()

	ref := statement.NewRef(string(src))
	report := c.ProcessChanges(context.Background(), []statement.Change{statement.Insert(ref)})
	if err := report.Err(); err != nil {
		return err
	}

	tree, ok := c.Lookup(ref.ID)
	if !ok {
		return fmt.Errorf("statement %s missing after insert", ref.ID)
	}
	defer tree.Close()

	printTree(cmd.OutOrStdout(), tree)
	if tree.RootNode().HasError() {
		fmt.Fprintln(cmd.ErrOrStderr(), errorColor.Sprint("tree contains syntax errors"))
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

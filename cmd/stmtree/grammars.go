package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bethropolis/stmtree/internal/parser"
)

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "List the registered grammars",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, g := range parser.Grammars() {
			line := nameColor.Sprint(g.Name)
			if g.Name == cfg.Parser.Grammar {
				line += okColor.Sprint(" (default)")
			}
			if len(g.Aliases) > 0 {
				line += detailColor.Sprintf(" aliases: %s", strings.Join(g.Aliases, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

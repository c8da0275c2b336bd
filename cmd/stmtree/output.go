package main

import (
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
	sitter "github.com/smacker/go-tree-sitter"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	nameColor   = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	detailColor = color.New(color.Faint)
)

var errorNode = regexp.MustCompile(`\b(ERROR|MISSING)\b`)

// printTree writes the S-expression of tree with error nodes highlighted.
func printTree(w io.Writer, tree *sitter.Tree) {
	sexp := tree.RootNode().String()
	fmt.Fprintln(w, errorNode.ReplaceAllStringFunc(sexp, func(s string) string {
		return errorColor.Sprint(s)
	}))
}

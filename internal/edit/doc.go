// Package edit converts character-offset text changes into the byte and
// row/column edit descriptors consumed by tree-sitter's incremental parser.
//
// Callers describe changes the way editors and language servers do: a half-open
// range of character (rune) indices into the current text plus replacement text.
// Tree-sitter needs the same change as byte offsets and (row, column) points, where
// a column is a byte offset from the start of its line. Compute performs that
// translation in a single scan of the original text; Apply produces the text the
// edited tree must be reparsed against.
package edit

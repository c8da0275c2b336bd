// Package coordinator keeps a syntax tree per statement in sync with a stream of
// text changes.
//
// # Protocol
//
// Callers submit ordered batches of statement.Change records:
//
//   - a change without an edit removes the statement (removing an unknown
//     statement is not an error);
//   - an edit without a range inserts the statement, parsing its text from scratch;
//   - an edit with a character range is applied incrementally: the range is
//     translated into a tree-sitter edit descriptor, applied to a copy of the cached
//     tree, and the spliced text is reparsed with that copy as the baseline.
//
// Each change yields its own Result; a failure never stops the rest of the batch.
// Updates are all-or-nothing per statement: when translating or reparsing fails,
// the statement keeps its previous tree and text.
//
// # Concurrency
//
// Independent statements can be changed from different goroutines. Edits to the
// same statement are serialized by a per-statement lock. All parsing goes through
// one shared parser.Engine and is therefore serialized system-wide.
package coordinator

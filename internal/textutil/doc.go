// Package textutil provides the text helpers shared by the report and the
// heuristic scans: Unicode case folding, rune-safe snippets, and token
// fingerprints for grouping near-identical annotator comments.
//
// Annotator comments and transcripts are Dutch, so tokenization keeps
// accented letters instead of splitting on them, and keyword matching folds
// case with golang.org/x/text rather than strings.ToLower.
package textutil

// Package validation defines the records crowd annotators produce for
// interview segments and the segment metadata those records refer to.
//
// Decisions are modelled explicitly: a field that was never provided is
// DecisionAbsent, which is distinct from DecisionApprove. Any value outside
// approve/edit is kept verbatim so callers can log it, but it never counts as
// an approval. The decoders accept both the flat per-file shape and the
// consolidated shape that wraps the body in "segment_validation".
package validation

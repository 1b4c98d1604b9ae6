package testsupport

import "segcheck/internal/validation"

// RecordOption customizes a record built by NewRecord.
type RecordOption func(*validation.Record)

// NewRecord returns a clean validation record (everything approved, nothing
// removed) and applies opts on top.
func NewRecord(segmentID, userID string, opts ...RecordOption) validation.Record {
	record := validation.Record{
		SegmentID: segmentID,
		UserID:    userID,
		Title:     validation.DecisionApprove,
		StartTime: validation.DecisionApprove,
		EndTime:   validation.DecisionApprove,
	}
	for _, opt := range opts {
		opt(&record)
	}
	return record
}

// WithRemoveFragment marks the fragment as removed.
func WithRemoveFragment() RecordOption {
	return func(r *validation.Record) { r.RemoveFragment = true }
}

// WithTitle sets the title decision.
func WithTitle(d validation.Decision) RecordOption {
	return func(r *validation.Record) { r.Title = d }
}

// WithStart sets the start time decision.
func WithStart(d validation.Decision) RecordOption {
	return func(r *validation.Record) { r.StartTime = d }
}

// WithEnd sets the end time decision.
func WithEnd(d validation.Decision) RecordOption {
	return func(r *validation.Record) { r.EndTime = d }
}

// WithConcepts replaces the concept actions.
func WithConcepts(actions ...validation.ConceptAction) RecordOption {
	return func(r *validation.Record) { r.Concepts = actions }
}

// WithComment sets the free-text comment.
func WithComment(comment string) RecordOption {
	return func(r *validation.Record) { r.Comment = comment }
}

// Keep builds a keep action for uri.
func Keep(uri string) validation.ConceptAction {
	return validation.ConceptAction{ConceptURI: uri, Action: validation.ActionKeep}
}

// Remove builds a remove action for uri.
func Remove(uri string) validation.ConceptAction {
	return validation.ConceptAction{ConceptURI: uri, Action: validation.ActionRemove}
}

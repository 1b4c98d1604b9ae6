package consensus

import "segcheck/internal/validation"

// Issue is a tag describing why a validation was not a clean approval.
type Issue string

const (
	IssueRemoveFragment Issue = "REMOVE_FRAGMENT"
	IssueEditTitle      Issue = "EDIT_TITLE"
	IssueEditStart      Issue = "EDIT_START"
	IssueEditEnd        Issue = "EDIT_END"
	IssueRemoveConcept  Issue = "REMOVE_CONCEPT"
)

// AllIssues lists every issue tag in the order they are derived from a record.
var AllIssues = []Issue{
	IssueRemoveFragment,
	IssueEditTitle,
	IssueEditStart,
	IssueEditEnd,
	IssueRemoveConcept,
}

// IsClean reports whether the record is a pure approval. Absent or
// unrecognized decisions are not approvals.
func IsClean(record validation.Record) bool {
	if record.RemoveFragment {
		return false
	}
	if !record.Title.IsApprove() || !record.StartTime.IsApprove() || !record.EndTime.IsApprove() {
		return false
	}
	for _, concept := range record.Concepts {
		if concept.Action != validation.ActionKeep {
			return false
		}
	}
	return true
}

// Issues derives the issue tags of a single record. REMOVE_CONCEPT is
// emitted at most once no matter how many concepts were removed. A record
// may be not clean and still yield no tags (for example an absent decision).
func Issues(record validation.Record) []Issue {
	var issues []Issue
	if record.RemoveFragment {
		issues = append(issues, IssueRemoveFragment)
	}
	if record.Title.IsEdit() {
		issues = append(issues, IssueEditTitle)
	}
	if record.StartTime.IsEdit() {
		issues = append(issues, IssueEditStart)
	}
	if record.EndTime.IsEdit() {
		issues = append(issues, IssueEditEnd)
	}
	for _, concept := range record.Concepts {
		if concept.Action == validation.ActionRemove {
			issues = append(issues, IssueRemoveConcept)
			break
		}
	}
	return issues
}

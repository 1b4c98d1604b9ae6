package consensus

import (
	"errors"
	"fmt"
	"sort"

	"segcheck/internal/validation"
)

// DefaultThreshold is the fraction of agreeing votes required for a definitive status.
const DefaultThreshold = 0.6

// ErrInvalidThreshold is returned for thresholds outside (0, 1].
var ErrInvalidThreshold = errors.New("consensus threshold must be in (0, 1]")

// Status is the crowd verdict for one segment.
type Status string

const (
	StatusNoData   Status = "NO_DATA"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusConflict Status = "CONFLICT"
)

// Statuses lists every status in report order.
var Statuses = []Status{StatusAccepted, StatusRejected, StatusConflict, StatusNoData}

// ParseStatus maps a case-sensitive status name.
func ParseStatus(value string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == value {
			return s, true
		}
	}
	return "", false
}

// Result is the derived verdict for one segment.
type Result struct {
	Status         Status   `json:"status" yaml:"status"`
	CleanVotes     int      `json:"clean_votes" yaml:"clean_votes"`
	TotalVotes     int      `json:"total_votes" yaml:"total_votes"`
	DominantIssues []Issue  `json:"dominant_issues" yaml:"dominant_issues"`
	AllIssues      []Issue  `json:"all_issues" yaml:"all_issues"`
	Comments       []string `json:"comments" yaml:"comments"`
}

// RejectVotes is the number of not-clean records.
func (r Result) RejectVotes() int {
	return r.TotalVotes - r.CleanVotes
}

// VoteSplit formats the clean/reject split as "<clean> vs <reject>".
func (r Result) VoteSplit() string {
	return fmt.Sprintf("%d vs %d", r.CleanVotes, r.RejectVotes())
}

// HasIssue reports whether issue is among the dominant issues.
func (r Result) HasIssue(issue Issue) bool {
	for _, candidate := range r.DominantIssues {
		if candidate == issue {
			return true
		}
	}
	return false
}

// Evaluate classifies a segment from its validation records. The threshold
// is expected to be in (0, 1]; use New to validate it up front.
func Evaluate(records []validation.Record, threshold float64) Result {
	result := Result{
		Status:         StatusNoData,
		DominantIssues: []Issue{},
		AllIssues:      []Issue{},
		Comments:       []string{},
	}
	total := len(records)
	if total == 0 {
		return result
	}

	for _, record := range records {
		if record.HasComment() {
			result.Comments = append(result.Comments, record.Comment)
		}
		if IsClean(record) {
			result.CleanVotes++
			continue
		}
		result.AllIssues = append(result.AllIssues, Issues(record)...)
	}
	result.TotalVotes = total

	rejectVotes := total - result.CleanVotes
	cleanRatio := float64(result.CleanVotes) / float64(total)
	rejectRatio := float64(rejectVotes) / float64(total)

	switch {
	case cleanRatio >= threshold:
		result.Status = StatusAccepted
	case rejectRatio >= threshold:
		result.Status = StatusRejected
	default:
		result.Status = StatusConflict
	}

	// Compared as floats: with 3 dissenters a single mention
	// (1 >= 1.5) is not dominant but two are.
	quorum := float64(rejectVotes) * 0.5
	for _, counted := range CountIssues(result.AllIssues) {
		if float64(counted.Count) >= quorum {
			result.DominantIssues = append(result.DominantIssues, counted.Issue)
		}
	}
	return result
}

// Evaluator applies a validated threshold.
type Evaluator struct {
	threshold float64
}

// New returns an Evaluator for threshold, which must be in (0, 1].
func New(threshold float64) (*Evaluator, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Evaluator{threshold: threshold}, nil
}

// ValidateThreshold checks that threshold lies in (0, 1].
func ValidateThreshold(threshold float64) error {
	if !(threshold > 0 && threshold <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Threshold returns the configured consensus threshold.
func (e *Evaluator) Threshold() float64 {
	return e.threshold
}

// Evaluate classifies one segment's records.
func (e *Evaluator) Evaluate(records []validation.Record) Result {
	return Evaluate(records, e.threshold)
}

// SegmentResult pairs a segment id with its verdict.
type SegmentResult struct {
	SegmentID string `json:"segment_id" yaml:"segment_id"`
	Result    `yaml:",inline"`
}

// EvaluateAll evaluates every segment of a validation store independently.
// Results are sorted by segment id.
func (e *Evaluator) EvaluateAll(store map[string][]validation.Record) []SegmentResult {
	ids := make([]string, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]SegmentResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, SegmentResult{SegmentID: id, Result: e.Evaluate(store[id])})
	}
	return results
}

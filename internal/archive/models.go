package archive

import (
	"time"

	"segcheck/internal/consensus"
)

// StatusCount is the number of segments that ended in one status.
type StatusCount struct {
	Status consensus.Status `json:"status" yaml:"status"`
	Count  int              `json:"count" yaml:"count"`
}

// IssueTotal aggregates one issue tag over a run.
type IssueTotal struct {
	Issue consensus.Issue `json:"issue" yaml:"issue"`
	// Dominant counts segments where the issue was dominant.
	Dominant int `json:"dominant" yaml:"dominant"`
	// Occurrences counts the tag across all non-clean records.
	Occurrences int `json:"occurrences" yaml:"occurrences"`
}

// Run is the stored summary of one analyze invocation.
type Run struct {
	ID             string        `json:"id" yaml:"id"`
	CreatedAt      time.Time     `json:"created_at" yaml:"created_at"`
	Label          string        `json:"label,omitempty" yaml:"label,omitempty"`
	Threshold      float64       `json:"threshold" yaml:"threshold"`
	SegmentsDir    string        `json:"segments_dir,omitempty" yaml:"segments_dir,omitempty"`
	ValidationsDir string        `json:"validations_dir,omitempty" yaml:"validations_dir,omitempty"`
	Segments       int           `json:"segments" yaml:"segments"`
	Records        int           `json:"records" yaml:"records"`
	Skipped        int           `json:"skipped" yaml:"skipped"`
	Statuses       []StatusCount `json:"statuses" yaml:"statuses"`
	Issues         []IssueTotal  `json:"issues" yaml:"issues"`
}

// StatusCount returns the count stored for status.
func (r Run) StatusCount(status consensus.Status) int {
	for _, sc := range r.Statuses {
		if sc.Status == status {
			return sc.Count
		}
	}
	return 0
}

// Issue returns the totals stored for issue.
func (r Run) Issue(issue consensus.Issue) IssueTotal {
	for _, it := range r.Issues {
		if it.Issue == issue {
			return it
		}
	}
	return IssueTotal{Issue: issue}
}

// AcceptanceRate is the share of evaluated segments that were ACCEPTED.
func (r Run) AcceptanceRate() float64 {
	if r.Segments == 0 {
		return 0
	}
	return float64(r.StatusCount(consensus.StatusAccepted)) / float64(r.Segments)
}

// ShortID returns the first eight characters of the id.
func (r Run) ShortID() string {
	if len(r.ID) <= 8 {
		return r.ID
	}
	return r.ID[:8]
}

// NewRun aggregates per-segment results into a Run. Identity, label, and
// input fields are left for the caller.
func NewRun(results []consensus.SegmentResult, threshold float64) Run {
	run := Run{Threshold: threshold, Segments: len(results)}

	statusCounts := make(map[consensus.Status]int, len(consensus.Statuses))
	dominant := make(map[consensus.Issue]int, len(consensus.AllIssues))
	occurrences := make(map[consensus.Issue]int, len(consensus.AllIssues))
	for _, result := range results {
		statusCounts[result.Status]++
		run.Records += result.TotalVotes
		for _, issue := range result.DominantIssues {
			dominant[issue]++
		}
		for _, issue := range result.AllIssues {
			occurrences[issue]++
		}
	}

	run.Statuses = make([]StatusCount, 0, len(consensus.Statuses))
	for _, status := range consensus.Statuses {
		run.Statuses = append(run.Statuses, StatusCount{Status: status, Count: statusCounts[status]})
	}
	run.Issues = make([]IssueTotal, 0, len(consensus.AllIssues))
	for _, issue := range consensus.AllIssues {
		run.Issues = append(run.Issues, IssueTotal{
			Issue:       issue,
			Dominant:    dominant[issue],
			Occurrences: occurrences[issue],
		})
	}
	return run
}

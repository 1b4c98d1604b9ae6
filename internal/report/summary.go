package report

import (
	"segcheck/internal/consensus"
)

// StatusCount is the number of rows with one status.
type StatusCount struct {
	Status consensus.Status `json:"status" yaml:"status"`
	Count  int              `json:"count" yaml:"count"`
}

// Evidence collects sample comments for one rejection pattern.
type Evidence struct {
	Cases   int      `json:"cases" yaml:"cases"`
	Samples []string `json:"samples" yaml:"samples"`
}

// ConsensusSummary condenses report rows.
type ConsensusSummary struct {
	Segments         int                    `json:"segments" yaml:"segments"`
	Distribution     []StatusCount          `json:"status_distribution" yaml:"status_distribution"`
	RejectionReasons []consensus.IssueCount `json:"rejection_reasons" yaml:"rejection_reasons"`
	Removals         Evidence               `json:"fragment_removals" yaml:"fragment_removals"`
	StartEdits       Evidence               `json:"start_edits" yaml:"start_edits"`
	Conflicts        Evidence               `json:"conflicts" yaml:"conflicts"`
}

// Count returns the number of rows with status.
func (s ConsensusSummary) Count(status consensus.Status) int {
	for _, sc := range s.Distribution {
		if sc.Status == status {
			return sc.Count
		}
	}
	return 0
}

// Summarize builds the status distribution, the dominant issues across
// REJECTED rows (most common first), and up to samples comment texts for
// removals, start edits, and conflicts. Rows without comments are not sampled.
func Summarize(rows []Row, samples int) ConsensusSummary {
	summary := ConsensusSummary{
		Segments:         len(rows),
		RejectionReasons: []consensus.IssueCount{},
		Removals:         Evidence{Samples: []string{}},
		StartEdits:       Evidence{Samples: []string{}},
		Conflicts:        Evidence{Samples: []string{}},
	}

	counts := make(map[consensus.Status]int, len(consensus.Statuses))
	var reasons []consensus.Issue
	for _, row := range rows {
		counts[row.Status]++
		switch row.Status {
		case consensus.StatusRejected:
			reasons = append(reasons, row.Issues...)
			if row.hasIssue(consensus.IssueRemoveFragment) {
				summary.Removals.add(row.CommentText, samples)
			}
			if row.hasIssue(consensus.IssueEditStart) {
				summary.StartEdits.add(row.CommentText, samples)
			}
		case consensus.StatusConflict:
			summary.Conflicts.add(row.CommentText, samples)
		}
	}
	for _, status := range consensus.Statuses {
		if counts[status] > 0 {
			summary.Distribution = append(summary.Distribution, StatusCount{Status: status, Count: counts[status]})
		}
	}
	if summary.Distribution == nil {
		summary.Distribution = []StatusCount{}
	}
	if len(reasons) > 0 {
		summary.RejectionReasons = consensus.MostCommon(consensus.CountIssues(reasons))
	}
	return summary
}

func (e *Evidence) add(comment string, limit int) {
	e.Cases++
	if comment == "" || (limit >= 0 && len(e.Samples) >= limit) {
		return
	}
	e.Samples = append(e.Samples, comment)
}

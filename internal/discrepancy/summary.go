package discrepancy

import (
	"sort"

	"segcheck/internal/consensus"
)

// ConceptCount is the number of removals of one concept URI.
type ConceptCount struct {
	URI   string `json:"uri" yaml:"uri"`
	Count int    `json:"count" yaml:"count"`
}

// Summary aggregates findings.
type Summary struct {
	Total               int                    `json:"total_validations" yaml:"total_validations"`
	Rejected            int                    `json:"rejected" yaml:"rejected"`
	NonAcceptanceRate   float64                `json:"non_acceptance_rate" yaml:"non_acceptance_rate"`
	IssueCounts         []consensus.IssueCount `json:"issue_counts" yaml:"issue_counts"`
	RemovedConceptTotal int                    `json:"removed_concept_total" yaml:"removed_concept_total"`
	TopRemovedConcepts  []ConceptCount         `json:"top_removed_concepts" yaml:"top_removed_concepts"`
	UnknownSegments     int                    `json:"unknown_segments" yaml:"unknown_segments"`
}

// Summarize aggregates findings. topN bounds TopRemovedConcepts; zero or
// negative keeps every URI.
func Summarize(findings []Finding, topN int) Summary {
	summary := Summary{
		Total:              len(findings),
		IssueCounts:        []consensus.IssueCount{},
		TopRemovedConcepts: []ConceptCount{},
	}
	var tags []consensus.Issue
	var removed []string
	for _, finding := range findings {
		if finding.Rejected {
			summary.Rejected++
		}
		if finding.Segment == nil {
			summary.UnknownSegments++
		}
		tags = append(tags, finding.Issues...)
		removed = append(removed, finding.RemovedConcepts...)
	}
	if summary.Total > 0 {
		summary.NonAcceptanceRate = float64(summary.Rejected) / float64(summary.Total)
	}
	if counts := consensus.CountIssues(tags); counts != nil {
		summary.IssueCounts = counts
	}
	summary.RemovedConceptTotal = len(removed)
	summary.TopRemovedConcepts = topConcepts(removed, topN)
	return summary
}

// Filter returns the findings for which keep returns true.
func Filter(findings []Finding, keep func(Finding) bool) []Finding {
	var out []Finding
	for _, finding := range findings {
		if keep(finding) {
			out = append(out, finding)
		}
	}
	return out
}

// WithIssue returns a predicate matching findings that carry issue.
func WithIssue(issue consensus.Issue) func(Finding) bool {
	return func(f Finding) bool { return f.HasIssue(issue) }
}

func topConcepts(uris []string, topN int) []ConceptCount {
	index := make(map[string]int)
	counts := []ConceptCount{}
	for _, uri := range uris {
		if i, ok := index[uri]; ok {
			counts[i].Count++
			continue
		}
		index[uri] = len(counts)
		counts = append(counts, ConceptCount{URI: uri, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

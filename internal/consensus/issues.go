package consensus

import "sort"

// IssueCount is the number of occurrences of one issue tag.
type IssueCount struct {
	Issue Issue `json:"issue" yaml:"issue"`
	Count int   `json:"count" yaml:"count"`
}

// CountIssues counts a multiset of tags, keeping first-seen order.
func CountIssues(issues []Issue) []IssueCount {
	index := make(map[Issue]int, len(AllIssues))
	var counts []IssueCount
	for _, issue := range issues {
		if i, ok := index[issue]; ok {
			counts[i].Count++
			continue
		}
		index[issue] = len(counts)
		counts = append(counts, IssueCount{Issue: issue, Count: 1})
	}
	return counts
}

// MostCommon orders counts by count descending. Ties keep their first-seen order.
func MostCommon(counts []IssueCount) []IssueCount {
	out := make([]IssueCount, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

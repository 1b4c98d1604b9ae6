package report

import (
	"strings"

	"segcheck/internal/consensus"
	"segcheck/internal/textutil"
	"segcheck/internal/validation"
)

const (
	// DefaultSnippetLength is the number of runes kept from segment text.
	DefaultSnippetLength = 50
	unknownSource        = "unknown"
)

// SegmentLookup resolves segment metadata by id.
type SegmentLookup interface {
	Get(id string) (validation.Segment, bool)
}

// Row is one line of the consensus report.
type Row struct {
	SegmentID      string           `json:"segment_id" yaml:"segment_id"`
	SourceFile     string           `json:"source_file" yaml:"source_file"`
	Status         consensus.Status `json:"consensus_status" yaml:"consensus_status"`
	VoteSplit      string           `json:"vote_split" yaml:"vote_split"`
	TotalVotes     int              `json:"total_votes" yaml:"total_votes"`
	DominantIssues string           `json:"dominant_issues" yaml:"dominant_issues"`
	CommentText    string           `json:"comment_text" yaml:"comment_text"`
	StartTime      *float64         `json:"start_time" yaml:"start_time"`
	TextSnippet    string           `json:"text_snippet" yaml:"text_snippet"`

	Issues []consensus.Issue `json:"-" yaml:"-"`
}

// BuildRows joins results with segment metadata. Segments missing from the
// lookup get source file "unknown" and an empty snippet.
func BuildRows(results []consensus.SegmentResult, segments SegmentLookup, snippetLen int) []Row {
	if snippetLen <= 0 {
		snippetLen = DefaultSnippetLength
	}
	rows := make([]Row, 0, len(results))
	for _, result := range results {
		row := Row{
			SegmentID:      result.SegmentID,
			SourceFile:     unknownSource,
			Status:         result.Status,
			VoteSplit:      result.VoteSplit(),
			TotalVotes:     result.TotalVotes,
			DominantIssues: joinIssues(result.DominantIssues),
			CommentText:    strings.Join(result.Comments, " | "),
			Issues:         result.DominantIssues,
		}
		if segments != nil {
			if segment, ok := segments.Get(result.SegmentID); ok {
				if segment.SourceFile != "" {
					row.SourceFile = segment.SourceFile
				}
				row.StartTime = segment.Start
				row.TextSnippet = textutil.Prefix(segment.Text, snippetLen)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FilterRows keeps rows whose status is in statuses. No statuses keeps all rows.
func FilterRows(rows []Row, statuses ...consensus.Status) []Row {
	if len(statuses) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		for _, status := range statuses {
			if row.Status == status {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func joinIssues(issues []consensus.Issue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, string(issue))
	}
	return strings.Join(parts, ", ")
}

func (r Row) hasIssue(issue consensus.Issue) bool {
	for _, candidate := range r.Issues {
		if candidate == issue {
			return true
		}
	}
	return false
}

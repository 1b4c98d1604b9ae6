package discrepancy

import (
	"segcheck/internal/consensus"
	"segcheck/internal/textutil"
	"segcheck/internal/validation"
)

// DefaultCommentMinLength is the comment length above which an otherwise
// clean record counts as rejected when the comment gate is on.
const DefaultCommentMinLength = 5

// SegmentLookup resolves segment metadata by id.
type SegmentLookup interface {
	Get(id string) (validation.Segment, bool)
}

// Options controls how records are judged.
type Options struct {
	CommentGate      bool
	CommentMinLength int
	// RequireSegment drops records whose segment cannot be looked up.
	RequireSegment bool
}

// DefaultOptions returns the comment gate enabled at the default length.
func DefaultOptions() Options {
	return Options{CommentGate: true, CommentMinLength: DefaultCommentMinLength}
}

// Finding is the analysis of one validation record.
type Finding struct {
	SegmentID       string            `json:"segment_id" yaml:"segment_id"`
	UserID          string            `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	SourceFile      string            `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Clean           bool              `json:"clean" yaml:"clean"`
	Rejected        bool              `json:"rejected" yaml:"rejected"`
	Issues          []consensus.Issue `json:"issues" yaml:"issues"`
	RemovedConcepts []string          `json:"removed_concepts" yaml:"removed_concepts"`
	Comment         string            `json:"comment,omitempty" yaml:"comment,omitempty"`
	Meta            *SegmentMeta      `json:"segment,omitempty" yaml:"segment,omitempty"`

	Segment *validation.Segment `json:"-" yaml:"-"`
}

// SegmentMeta is display data about the segment a record refers to.
type SegmentMeta struct {
	Title      string   `json:"title,omitempty" yaml:"title,omitempty"`
	TextLength int      `json:"text_length" yaml:"text_length"`
	Start      *float64 `json:"start,omitempty" yaml:"start,omitempty"`
	Duration   *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	Concepts   []string `json:"concepts,omitempty" yaml:"concepts,omitempty"`
}

// HasIssue reports whether the finding carries issue.
func (f Finding) HasIssue(issue consensus.Issue) bool {
	for _, candidate := range f.Issues {
		if candidate == issue {
			return true
		}
	}
	return false
}

// Text returns the segment text, or "" when the segment is unknown.
func (f Finding) Text() string {
	if f.Segment == nil {
		return ""
	}
	return f.Segment.Text
}

// Title returns the segment title, or "" when the segment is unknown.
func (f Finding) Title() string {
	if f.Segment == nil {
		return ""
	}
	return f.Segment.Title
}

// Analyze produces one Finding per record, in input order.
func Analyze(records []validation.Record, segments SegmentLookup, opts Options) []Finding {
	findings := make([]Finding, 0, len(records))
	for _, record := range records {
		var segment *validation.Segment
		if segments != nil {
			if found, ok := segments.Get(record.SegmentID); ok {
				segment = &found
			}
		}
		if segment == nil && opts.RequireSegment {
			continue
		}
		findings = append(findings, analyzeRecord(record, segment, opts))
	}
	return findings
}

func analyzeRecord(record validation.Record, segment *validation.Segment, opts Options) Finding {
	clean := consensus.IsClean(record)
	finding := Finding{
		SegmentID:       record.SegmentID,
		UserID:          record.UserID,
		SourceFile:      record.SourceFile,
		Clean:           clean,
		Issues:          []consensus.Issue{},
		RemovedConcepts: record.RemovedConcepts(),
		Comment:         record.TrimmedComment(),
		Segment:         segment,
	}
	if !clean {
		finding.Issues = consensus.Issues(record)
	}
	if finding.RemovedConcepts == nil {
		finding.RemovedConcepts = []string{}
	}
	finding.Rejected = !clean || (opts.CommentGate && textutil.RuneLen(finding.Comment) > opts.CommentMinLength)
	if segment != nil {
		finding.Meta = newSegmentMeta(*segment)
	}
	return finding
}

func newSegmentMeta(segment validation.Segment) *SegmentMeta {
	meta := &SegmentMeta{
		Title:      segment.Title,
		TextLength: textutil.RuneLen(segment.Text),
		Start:      segment.Start,
		Concepts:   segment.ConceptNames(),
	}
	if duration, ok := segment.Duration(); ok {
		meta.Duration = &duration
	}
	return meta
}

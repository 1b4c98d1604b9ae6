package validation

import "strings"

// Decision is an annotator's verdict on one segment field (title, start or end time).
type Decision string

const (
	// DecisionAbsent means the field carried no decision at all.
	DecisionAbsent  Decision = ""
	DecisionApprove Decision = "approve"
	DecisionEdit    Decision = "edit"
)

// ParseDecision maps a raw decision value. Values other than approve/edit are
// returned unchanged and report false from Recognized.
func ParseDecision(raw string) Decision {
	return Decision(raw)
}

// Recognized reports whether the decision is absent, approve or edit.
func (d Decision) Recognized() bool {
	switch d {
	case DecisionAbsent, DecisionApprove, DecisionEdit:
		return true
	default:
		return false
	}
}

// IsApprove reports strict equality with the approve literal.
func (d Decision) IsApprove() bool { return d == DecisionApprove }

// IsEdit reports strict equality with the edit literal.
func (d Decision) IsEdit() bool { return d == DecisionEdit }

func (d Decision) String() string {
	if d == DecisionAbsent {
		return "absent"
	}
	return string(d)
}

// Action is what an annotator did with one matched thesaurus concept.
type Action string

const (
	ActionKeep   Action = "keep"
	ActionRemove Action = "remove"
)

// ConceptAction pairs a concept URI with the annotator's action on it.
type ConceptAction struct {
	ConceptURI string `json:"uri"`
	Action     Action `json:"action"`
}

// Record is one annotator's judgment of one segment.
type Record struct {
	SegmentID      string          `json:"segment_id"`
	UserID         string          `json:"user_id,omitempty"`
	RemoveFragment bool            `json:"remove_fragment"`
	Title          Decision        `json:"title_decision,omitempty"`
	StartTime      Decision        `json:"start_time_decision,omitempty"`
	EndTime        Decision        `json:"end_time_decision,omitempty"`
	Concepts       []ConceptAction `json:"concept_actions,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	SourceFile     string          `json:"source_file,omitempty"`
}

// HasComment reports whether the record carries a non-empty comment.
func (r Record) HasComment() bool {
	return r.Comment != ""
}

// TrimmedComment returns the comment without surrounding whitespace.
func (r Record) TrimmedComment() string {
	return strings.TrimSpace(r.Comment)
}

// RemovedConcepts lists the URIs of concepts the annotator removed, in order.
// Blank URIs are reported as "unknown".
func (r Record) RemovedConcepts() []string {
	var uris []string
	for _, c := range r.Concepts {
		if c.Action != ActionRemove {
			continue
		}
		uri := strings.TrimSpace(c.ConceptURI)
		if uri == "" {
			uri = "unknown"
		}
		uris = append(uris, uri)
	}
	return uris
}

// UnrecognizedDecisions returns the field names whose decisions hold a value
// outside absent/approve/edit.
func (r Record) UnrecognizedDecisions() []string {
	var fields []string
	if !r.Title.Recognized() {
		fields = append(fields, "title_validation")
	}
	if !r.StartTime.Recognized() {
		fields = append(fields, "start_time_validation")
	}
	if !r.EndTime.Recognized() {
		fields = append(fields, "end_time_validation")
	}
	return fields
}

package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingSegmentID marks a record or segment without a segment_id.
	ErrMissingSegmentID = errors.New("missing segment_id")
	// ErrInvalidDocument marks a file whose top level is not a JSON object or array.
	ErrInvalidDocument = errors.New("invalid document")
)

// MalformedError describes one entry of a file that could not be used.
// The rest of the file is still decoded.
type MalformedError struct {
	Source string
	Index  int
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Source, e.Index, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

type rawDecision struct {
	Decision *string `json:"decision"`
}

func (r *rawDecision) value() Decision {
	if r == nil || r.Decision == nil {
		return DecisionAbsent
	}
	return ParseDecision(*r.Decision)
}

type rawConcept struct {
	URI    string `json:"uri"`
	Action string `json:"action"`
}

type rawRecord struct {
	SegmentID      string          `json:"segment_id"`
	UserID         string          `json:"user_id"`
	RemoveFragment json.RawMessage `json:"remove_fragment"`
	Title          *rawDecision    `json:"title_validation"`
	StartTime      *rawDecision    `json:"start_time_validation"`
	EndTime        *rawDecision    `json:"end_time_validation"`
	Concepts       []rawConcept    `json:"concept_validation"`
	Comment        *string         `json:"comment"`
	Wrapped        *rawRecord      `json:"segment_validation"`
}

// DecodeRecords decodes a validation file holding one object or an array of
// objects. Entries that fail to decode or lack a segment_id are reported as
// *MalformedError values alongside the records that did decode.
func DecodeRecords(data []byte, source string) ([]Record, []error) {
	entries, err := splitEntries(data)
	if err != nil {
		return nil, []error{&MalformedError{Source: source, Index: 0, Err: err}}
	}

	records := make([]Record, 0, len(entries))
	var errs []error
	for i, entry := range entries {
		var raw rawRecord
		if err := json.Unmarshal(entry, &raw); err != nil {
			errs = append(errs, &MalformedError{Source: source, Index: i, Err: err})
			continue
		}
		record, err := raw.toRecord()
		if err != nil {
			errs = append(errs, &MalformedError{Source: source, Index: i, Err: err})
			continue
		}
		record.SourceFile = source
		records = append(records, record)
	}
	return records, errs
}

func (r rawRecord) toRecord() (Record, error) {
	body := r
	segmentID := strings.TrimSpace(r.SegmentID)
	userID := strings.TrimSpace(r.UserID)
	if r.Wrapped != nil {
		body = *r.Wrapped
		if segmentID == "" {
			segmentID = strings.TrimSpace(body.SegmentID)
		}
		if userID == "" {
			userID = strings.TrimSpace(body.UserID)
		}
	}
	if segmentID == "" {
		return Record{}, ErrMissingSegmentID
	}

	record := Record{
		SegmentID:      segmentID,
		UserID:         userID,
		RemoveFragment: isJSONTrue(body.RemoveFragment),
		Title:          body.Title.value(),
		StartTime:      body.StartTime.value(),
		EndTime:        body.EndTime.value(),
	}
	if len(body.Concepts) > 0 {
		record.Concepts = make([]ConceptAction, 0, len(body.Concepts))
		for _, c := range body.Concepts {
			record.Concepts = append(record.Concepts, ConceptAction{
				ConceptURI: c.URI,
				Action:     Action(c.Action),
			})
		}
	}
	if body.Comment != nil {
		record.Comment = *body.Comment
	}
	return record, nil
}

// isJSONTrue accepts only the JSON literal true; strings, numbers and null are false.
func isJSONTrue(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("true"))
}

type rawSegment struct {
	Segment
	Nested   *rawSegmentBody `json:"segment"`
	Enriched json.RawMessage `json:"enriched_segments"`
}

type rawSegmentBody struct {
	Text  string   `json:"text"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

// DecodeSegments decodes an enriched segment file. It accepts a single
// segment, an array of segments, or consolidated entries of the form
// {"video_name": ..., "enriched_segments": [...]}.
func DecodeSegments(data []byte, source string) ([]Segment, []error) {
	entries, err := splitEntries(data)
	if err != nil {
		return nil, []error{&MalformedError{Source: source, Index: 0, Err: err}}
	}

	var (
		segments []Segment
		errs     []error
	)
	for i, entry := range entries {
		var raw rawSegment
		if err := json.Unmarshal(entry, &raw); err != nil {
			errs = append(errs, &MalformedError{Source: source, Index: i, Err: err})
			continue
		}
		if len(raw.Enriched) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Enriched), []byte("null")) {
			nested, nestedErrs := DecodeSegments(raw.Enriched, source)
			segments = append(segments, nested...)
			errs = append(errs, nestedErrs...)
			continue
		}
		segment := raw.Segment
		segment.ID = strings.TrimSpace(segment.ID)
		if segment.ID == "" {
			errs = append(errs, &MalformedError{Source: source, Index: i, Err: ErrMissingSegmentID})
			continue
		}
		if raw.Nested != nil {
			if segment.Text == "" {
				segment.Text = raw.Nested.Text
			}
			if segment.Start == nil {
				segment.Start = raw.Nested.Start
			}
			if segment.End == nil {
				segment.End = raw.Nested.End
			}
		}
		segment.SourceFile = source
		segments = append(segments, segment)
	}
	return segments, errs
}

// splitEntries returns the elements of a top-level array, or the single
// top-level object as a one-element slice.
func splitEntries(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidDocument)
	}
	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return entries, nil
	case '{':
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: malformed JSON object", ErrInvalidDocument)
		}
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	default:
		return nil, fmt.Errorf("%w: top-level value starts with %q", ErrInvalidDocument, trimmed[0])
	}
}

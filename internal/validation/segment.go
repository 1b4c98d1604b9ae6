package validation

import "strings"

// ThesaurusConcept is a concept from the controlled vocabulary used for enrichment.
type ThesaurusConcept struct {
	URI            string   `json:"uri"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	AlternateNames []string `json:"alternate_names,omitempty"`
	Description    string   `json:"description,omitempty"`
	TopConcept     []string `json:"top_concept,omitempty"`
	Narrower       []string `json:"narrower,omitempty"`
}

// MatchedConcept links a segment to a thesaurus concept. Older exports carry
// uri/name directly; newer ones nest the full concept.
type MatchedConcept struct {
	URI     string            `json:"uri,omitempty"`
	Name    string            `json:"name,omitempty"`
	Source  string            `json:"source,omitempty"`
	Score   *float64          `json:"score,omitempty"`
	Concept *ThesaurusConcept `json:"concept,omitempty"`
}

// ConceptURI returns the flat URI, falling back to the nested concept.
func (m MatchedConcept) ConceptURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.Concept != nil {
		return m.Concept.URI
	}
	return ""
}

// DisplayName returns the flat name, falling back to the nested concept.
func (m MatchedConcept) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.Concept != nil {
		return m.Concept.Name
	}
	return ""
}

// Segment is the enriched metadata of one transcript segment. It is display
// data only; consensus evaluation never reads it.
type Segment struct {
	ID              string           `json:"segment_id"`
	Title           string           `json:"title,omitempty"`
	Text            string           `json:"text"`
	Start           *float64         `json:"start,omitempty"`
	End             *float64         `json:"end,omitempty"`
	MatchedConcepts []MatchedConcept `json:"matched_concepts,omitempty"`
	SourceFile      string           `json:"source_file,omitempty"`
}

// Duration returns End-Start in seconds when both bounds are known.
func (s Segment) Duration() (float64, bool) {
	if s.Start == nil || s.End == nil {
		return 0, false
	}
	return *s.End - *s.Start, true
}

// ConceptNames lists the display names of the matched concepts, skipping blanks.
func (s Segment) ConceptNames() []string {
	names := make([]string, 0, len(s.MatchedConcepts))
	for _, c := range s.MatchedConcepts {
		if name := strings.TrimSpace(c.DisplayName()); name != "" {
			names = append(names, name)
		}
	}
	return names
}

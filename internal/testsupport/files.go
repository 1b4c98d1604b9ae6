package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"segcheck/internal/validation"
)

// WriteFile writes raw content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJSON marshals value into path.
func WriteJSON(t testing.TB, path string, value any) {
	t.Helper()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	WriteFile(t, path, data)
}

// WriteValidations writes records to dir/name as a JSON array in the
// reviewer export shape.
func WriteValidations(t testing.TB, dir, name string, records ...validation.Record) string {
	t.Helper()

	entries := make([]map[string]any, 0, len(records))
	for _, record := range records {
		entries = append(entries, ValidationJSON(record))
	}
	path := filepath.Join(dir, name)
	WriteJSON(t, path, entries)
	return path
}

// WriteSegments writes segments to dir/name as a JSON array.
func WriteSegments(t testing.TB, dir, name string, segments ...validation.Segment) string {
	t.Helper()

	path := filepath.Join(dir, name)
	WriteJSON(t, path, segments)
	return path
}

// ValidationJSON converts a record into the map a reviewer export would hold.
// Absent decisions are omitted.
func ValidationJSON(record validation.Record) map[string]any {
	out := map[string]any{
		"segment_id":      record.SegmentID,
		"remove_fragment": record.RemoveFragment,
	}
	if record.UserID != "" {
		out["user_id"] = record.UserID
	}
	decisions := map[string]validation.Decision{
		"title_validation":      record.Title,
		"start_time_validation": record.StartTime,
		"end_time_validation":   record.EndTime,
	}
	for key, decision := range decisions {
		if decision != validation.DecisionAbsent {
			out[key] = map[string]string{"decision": string(decision)}
		}
	}
	if len(record.Concepts) > 0 {
		concepts := make([]map[string]string, 0, len(record.Concepts))
		for _, c := range record.Concepts {
			concepts = append(concepts, map[string]string{"uri": c.ConceptURI, "action": string(c.Action)})
		}
		out["concept_validation"] = concepts
	}
	if record.Comment != "" {
		out["comment"] = record.Comment
	}
	return out
}

// Seconds returns a pointer to v for segment start and end fields.
func Seconds(v float64) *float64 {
	return &v
}

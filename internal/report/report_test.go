package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"segcheck/internal/archive"
	"segcheck/internal/consensus"
	"segcheck/internal/discrepancy"
	"segcheck/internal/heuristics"
	"segcheck/internal/loader"
	"segcheck/internal/report"
	"segcheck/internal/testsupport"
	"segcheck/internal/validation"
)

func results(t *testing.T) []consensus.SegmentResult {
	t.Helper()
	evaluator, err := consensus.New(0.6)
	if err != nil {
		t.Fatalf("consensus.New: %v", err)
	}
	return evaluator.EvaluateAll(map[string][]validation.Record{
		"seg-a": {
			testsupport.NewRecord("seg-a", "u1"),
			testsupport.NewRecord("seg-a", "u2", testsupport.WithComment("prima")),
		},
		"seg-b": {
			testsupport.NewRecord("seg-b", "u1", testsupport.WithRemoveFragment(), testsupport.WithComment("alleen intro")),
			testsupport.NewRecord("seg-b", "u2", testsupport.WithRemoveFragment(), testsupport.WithStart(validation.DecisionEdit), testsupport.WithComment("niets")),
		},
		"seg-c": {
			testsupport.NewRecord("seg-c", "u1", testsupport.WithStart(validation.DecisionEdit), testsupport.WithComment("begint te vroeg")),
			testsupport.NewRecord("seg-c", "u2"),
		},
	})
}

func segments() *loader.SegmentStore {
	return loader.NewSegmentStore(validation.Segment{
		ID:         "seg-a",
		Text:       strings.Repeat("é", 60),
		Start:      testsupport.Seconds(12.5),
		SourceFile: "interview-01.json",
	})
}

func TestBuildRows(t *testing.T) {
	rows := report.BuildRows(results(t), segments(), 50)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	a, b := rows[0], rows[1]
	if a.SourceFile != "interview-01.json" || a.StartTime == nil || *a.StartTime != 12.5 {
		t.Fatalf("unexpected metadata on known segment: %+v", a)
	}
	if got := []rune(a.TextSnippet); len(got) != 50 {
		t.Fatalf("expected 50 rune snippet, got %d", len(got))
	}
	if a.Status != consensus.StatusAccepted || a.VoteSplit != "2 vs 0" || a.CommentText != "prima" {
		t.Fatalf("unexpected accepted row %+v", a)
	}
	if b.SourceFile != "unknown" || b.TextSnippet != "" || b.StartTime != nil {
		t.Fatalf("unexpected metadata on unknown segment: %+v", b)
	}
	if b.DominantIssues != "REMOVE_FRAGMENT, EDIT_START" {
		t.Fatalf("unexpected dominant issues %q", b.DominantIssues)
	}
	if b.CommentText != "alleen intro | niets" {
		t.Fatalf("unexpected comment text %q", b.CommentText)
	}
}

func TestFilterRows(t *testing.T) {
	rows := report.BuildRows(results(t), nil, 0)
	if got := report.FilterRows(rows); len(got) != 3 {
		t.Fatalf("no filter should keep all rows, got %d", len(got))
	}
	got := report.FilterRows(rows, consensus.StatusRejected, consensus.StatusConflict)
	if len(got) != 2 || got[0].SegmentID != "seg-b" || got[1].SegmentID != "seg-c" {
		t.Fatalf("unexpected filtered rows %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	summary := report.Summarize(report.BuildRows(results(t), nil, 0), 3)
	if summary.Segments != 3 {
		t.Fatalf("unexpected segment count %d", summary.Segments)
	}
	for _, status := range []consensus.Status{consensus.StatusAccepted, consensus.StatusRejected, consensus.StatusConflict} {
		if summary.Count(status) != 1 {
			t.Fatalf("expected one %s, got %d", status, summary.Count(status))
		}
	}
	if summary.Count(consensus.StatusNoData) != 0 {
		t.Fatal("unexpected NO_DATA rows")
	}
	if len(summary.RejectionReasons) != 2 || summary.RejectionReasons[0].Issue != consensus.IssueRemoveFragment {
		t.Fatalf("unexpected rejection reasons %+v", summary.RejectionReasons)
	}
	if summary.Removals.Cases != 1 || summary.StartEdits.Cases != 1 {
		t.Fatalf("unexpected evidence %+v %+v", summary.Removals, summary.StartEdits)
	}
	if summary.Conflicts.Cases != 1 || summary.Conflicts.Samples[0] != "begint te vroeg" {
		t.Fatalf("unexpected conflicts %+v", summary.Conflicts)
	}

	none := report.Summarize(report.BuildRows(results(t), nil, 0), 0)
	if len(none.Conflicts.Samples) != 0 || none.Conflicts.Cases != 1 {
		t.Fatalf("zero samples should keep counts only, got %+v", none.Conflicts)
	}
}

func analysis(t *testing.T) report.Analysis {
	rows := report.BuildRows(results(t), segments(), 50)
	return report.Analysis{
		Threshold: 0.6,
		Records:   6,
		Summary:   report.Summarize(rows, 3),
		Rows:      rows,
	}
}

func TestWriteAnalysisText(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteAnalysis(&buf, report.FormatText, analysis(t), report.Options{}); err != nil {
		t.Fatalf("WriteAnalysis: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"== Crowd consensus report ==",
		"Threshold: 60.0%",
		"Rejected segments (consensus >= 60.0%)",
		"REMOVE_FRAGMENT",
		"Why are segments being removed? (1 cases)",
		"Conflict segments (1 cases)",
		"interview-01.json",
		"seg-c",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("expected no ANSI escapes without colour")
	}
}

func TestWriteAnalysisJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteAnalysis(&buf, report.FormatJSON, analysis(t), report.Options{}); err != nil {
		t.Fatalf("WriteAnalysis json: %v", err)
	}
	var decoded struct {
		Threshold float64 `json:"threshold"`
		Rows      []struct {
			SegmentID string `json:"segment_id"`
			Status    string `json:"consensus_status"`
			VoteSplit string `json:"vote_split"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Threshold != 0.6 || len(decoded.Rows) != 3 || decoded.Rows[1].Status != "REJECTED" {
		t.Fatalf("unexpected json document %+v", decoded)
	}

	buf.Reset()
	if err := report.WriteAnalysis(&buf, report.FormatYAML, analysis(t), report.Options{}); err != nil {
		t.Fatalf("WriteAnalysis yaml: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	rows, ok := doc["rows"].([]any)
	if !ok || len(rows) != 3 {
		t.Fatalf("unexpected yaml rows %v", doc["rows"])
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]report.Format{"": report.FormatText, "TEXT": report.FormatText, "json": report.FormatJSON, "yml": report.FormatYAML}
	for input, want := range cases {
		got, err := report.ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := report.ParseFormat("csv"); err == nil {
		t.Fatal("expected csv to be rejected")
	}
}

func TestWriteDiscrepancies(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("seg-a", "u1", testsupport.WithConcepts(testsupport.Remove("http://c/kamp"))),
		testsupport.NewRecord("seg-a", "u2"),
	}
	findings := discrepancy.Analyze(records, segments(), discrepancy.DefaultOptions())
	doc := report.Discrepancies{
		Summary: discrepancy.Summarize(findings, 3),
		Observations: []heuristics.Observation{
			{Scanner: "entities", Description: "capitalized words", Considered: 1, Matched: 1, Hits: []heuristics.Hit{{Label: "Westerbork", Count: 1}}},
		},
	}

	var buf bytes.Buffer
	if err := report.WriteDiscrepancies(&buf, report.FormatText, doc, report.Options{}); err != nil {
		t.Fatalf("WriteDiscrepancies: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Total validations: 2", "Non-acceptance rate: 50.0% (1/2)", "REMOVE_CONCEPT", "http://c/kamp", "Heuristic: entities", "Westerbork"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := report.WriteDiscrepancies(&buf, report.FormatJSON, report.Discrepancies{}, report.Options{}); err != nil {
		t.Fatalf("WriteDiscrepancies json: %v", err)
	}
	if !strings.Contains(buf.String(), `"heuristics": []`) {
		t.Fatalf("expected empty heuristics array, got %s", buf.String())
	}
}

func TestWriteHistoryAndComparison(t *testing.T) {
	base := archive.NewRun(results(t), 0.6)
	base.ID = "11111111-aaaa"
	base.Label = "baseline"
	target := archive.NewRun(results(t)[:1], 0.6)
	target.ID = "22222222-bbbb"

	var buf bytes.Buffer
	if err := report.WriteHistory(&buf, report.FormatText, []archive.Run{target, base}, report.Options{}); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "11111111") || !strings.Contains(buf.String(), "baseline") {
		t.Fatalf("unexpected history output:\n%s", buf.String())
	}

	buf.Reset()
	if err := report.WriteHistory(&buf, report.FormatText, nil, report.Options{}); err != nil {
		t.Fatalf("WriteHistory empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs recorded.") {
		t.Fatalf("unexpected empty history output %q", buf.String())
	}

	buf.Reset()
	if err := report.WriteComparison(&buf, report.FormatText, archive.Compare(base, target), report.Options{}); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"METRIC", "DELTA", "11111111 (baseline)", "acceptance rate", "+66.7%", "-2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in comparison:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := report.WriteRun(&buf, report.FormatText, base, report.Options{}); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Run 11111111-aaaa") || !strings.Contains(buf.String(), "OCCURRENCES") {
		t.Fatalf("unexpected run output:\n%s", buf.String())
	}
}

func TestShouldColorizeBuffer(t *testing.T) {
	if report.ShouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

package consensus_test

import (
	"errors"
	"reflect"
	"testing"

	"segcheck/internal/consensus"
	"segcheck/internal/testsupport"
	"segcheck/internal/validation"
)

func TestIsClean(t *testing.T) {
	cases := []struct {
		name   string
		record validation.Record
		want   bool
	}{
		{"all approve", testsupport.NewRecord("s", "u"), true},
		{"kept concepts", testsupport.NewRecord("s", "u", testsupport.WithConcepts(testsupport.Keep("a"), testsupport.Keep("b"))), true},
		{"comment does not matter", testsupport.NewRecord("s", "u", testsupport.WithComment("looks great")), true},
		{"remove fragment", testsupport.NewRecord("s", "u", testsupport.WithRemoveFragment()), false},
		{"title edit", testsupport.NewRecord("s", "u", testsupport.WithTitle(validation.DecisionEdit)), false},
		{"title absent", testsupport.NewRecord("s", "u", testsupport.WithTitle(validation.DecisionAbsent)), false},
		{"start unrecognized", testsupport.NewRecord("s", "u", testsupport.WithStart(validation.ParseDecision("approved"))), false},
		{"end edit", testsupport.NewRecord("s", "u", testsupport.WithEnd(validation.DecisionEdit)), false},
		{"concept removed", testsupport.NewRecord("s", "u", testsupport.WithConcepts(testsupport.Keep("a"), testsupport.Remove("b"))), false},
		{"concept unknown action", testsupport.NewRecord("s", "u", testsupport.WithConcepts(validation.ConceptAction{ConceptURI: "a", Action: "skip"})), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := consensus.IsClean(tc.record); got != tc.want {
				t.Fatalf("IsClean = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIssuesEmitsRemoveConceptOncePerRecord(t *testing.T) {
	record := testsupport.NewRecord("s", "u",
		testsupport.WithRemoveFragment(),
		testsupport.WithTitle(validation.DecisionEdit),
		testsupport.WithStart(validation.DecisionEdit),
		testsupport.WithEnd(validation.DecisionEdit),
		testsupport.WithConcepts(testsupport.Remove("a"), testsupport.Remove("b"), testsupport.Remove("c")),
	)
	got := consensus.Issues(record)
	want := []consensus.Issue{
		consensus.IssueRemoveFragment,
		consensus.IssueEditTitle,
		consensus.IssueEditStart,
		consensus.IssueEditEnd,
		consensus.IssueRemoveConcept,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Issues = %v, want %v", got, want)
	}
}

func TestEvaluateEmptyIsNoData(t *testing.T) {
	for _, threshold := range []float64{0.1, 0.5, 0.6, 1} {
		result := consensus.Evaluate(nil, threshold)
		if result.Status != consensus.StatusNoData {
			t.Fatalf("threshold %v: expected NO_DATA, got %s", threshold, result.Status)
		}
		if result.TotalVotes != 0 || result.CleanVotes != 0 {
			t.Fatalf("expected zero counts, got %+v", result)
		}
		if len(result.AllIssues) != 0 || len(result.DominantIssues) != 0 || len(result.Comments) != 0 {
			t.Fatalf("expected empty collections, got %+v", result)
		}
	}
}

func TestEvaluateAllCleanIsAccepted(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1"),
		testsupport.NewRecord("s", "u2"),
		testsupport.NewRecord("s", "u3"),
	}
	for _, threshold := range []float64{0.01, 0.6, 1} {
		result := consensus.Evaluate(records, threshold)
		if result.Status != consensus.StatusAccepted {
			t.Fatalf("threshold %v: expected ACCEPTED, got %s", threshold, result.Status)
		}
		if len(result.DominantIssues) != 0 {
			t.Fatalf("expected no dominant issues, got %v", result.DominantIssues)
		}
	}
}

func TestEvaluateAllRemovedIsRejected(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithRemoveFragment()),
		testsupport.NewRecord("s", "u2", testsupport.WithRemoveFragment(), testsupport.WithComment("intro only")),
	}
	result := consensus.Evaluate(records, 1)
	if result.Status != consensus.StatusRejected {
		t.Fatalf("expected REJECTED, got %s", result.Status)
	}
	if !result.HasIssue(consensus.IssueRemoveFragment) {
		t.Fatalf("expected REMOVE_FRAGMENT dominant, got %v", result.DominantIssues)
	}
	if result.VoteSplit() != "0 vs 2" {
		t.Fatalf("unexpected vote split %q", result.VoteSplit())
	}
}

func TestEvaluateScenarioAcceptedAtThreshold(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1"),
		testsupport.NewRecord("s", "u2"),
		testsupport.NewRecord("s", "u3"),
		testsupport.NewRecord("s", "u4", testsupport.WithStart(validation.DecisionEdit)),
		testsupport.NewRecord("s", "u5", testsupport.WithStart(validation.DecisionEdit)),
	}
	result := consensus.Evaluate(records, 0.6)
	if result.Status != consensus.StatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", result.Status)
	}
	if result.CleanVotes != 3 || result.RejectVotes() != 2 || result.TotalVotes != 5 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if !reflect.DeepEqual(result.DominantIssues, []consensus.Issue{consensus.IssueEditStart}) {
		t.Fatalf("expected EDIT_START dominant, got %v", result.DominantIssues)
	}
}

func TestEvaluateScenarioConflict(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1"),
		testsupport.NewRecord("s", "u2"),
		testsupport.NewRecord("s", "u3", testsupport.WithRemoveFragment()),
		testsupport.NewRecord("s", "u4", testsupport.WithRemoveFragment()),
	}
	result := consensus.Evaluate(records, 0.6)
	if result.Status != consensus.StatusConflict {
		t.Fatalf("expected CONFLICT, got %s", result.Status)
	}
}

func TestEvaluateTieFavoursAcceptedAtLowThreshold(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1"),
		testsupport.NewRecord("s", "u2", testsupport.WithRemoveFragment()),
	}
	if got := consensus.Evaluate(records, 0.5).Status; got != consensus.StatusAccepted {
		t.Fatalf("expected clean ratio to win a tie, got %s", got)
	}
}

func TestEvaluateAbsentTitleCountsAsRejectWithoutTag(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithTitle(validation.DecisionAbsent)),
	}
	result := consensus.Evaluate(records, 0.6)
	if result.CleanVotes != 0 || result.RejectVotes() != 1 {
		t.Fatalf("expected one reject vote, got %+v", result)
	}
	if result.Status != consensus.StatusRejected {
		t.Fatalf("expected REJECTED, got %s", result.Status)
	}
	if len(result.AllIssues) != 0 || len(result.DominantIssues) != 0 {
		t.Fatalf("expected no issue tags, got %+v", result)
	}
}

func TestEvaluateDominantIssuesUseFloatingQuorum(t *testing.T) {
	// Three dissenters: quorum is 1.5, so a tag needs two mentions.
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithStart(validation.DecisionEdit)),
		testsupport.NewRecord("s", "u2", testsupport.WithStart(validation.DecisionEdit)),
		testsupport.NewRecord("s", "u3", testsupport.WithTitle(validation.DecisionEdit)),
	}
	result := consensus.Evaluate(records, 0.6)
	want := []consensus.Issue{consensus.IssueEditStart}
	if !reflect.DeepEqual(result.DominantIssues, want) {
		t.Fatalf("dominant = %v, want %v", result.DominantIssues, want)
	}
	if len(result.AllIssues) != 3 {
		t.Fatalf("expected 3 issues, got %v", result.AllIssues)
	}
}

func TestEvaluateRemoveConceptCountsRecordsNotConcepts(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithConcepts(testsupport.Remove("a"), testsupport.Remove("b"))),
		testsupport.NewRecord("s", "u2", testsupport.WithConcepts(testsupport.Remove("a"))),
		testsupport.NewRecord("s", "u3", testsupport.WithConcepts(testsupport.Keep("a"))),
	}
	result := consensus.Evaluate(records, 0.6)
	var removeConcept int
	for _, issue := range result.AllIssues {
		if issue == consensus.IssueRemoveConcept {
			removeConcept++
		}
	}
	if removeConcept != 2 {
		t.Fatalf("expected one REMOVE_CONCEPT per dissenting record, got %d", removeConcept)
	}
}

func TestEvaluateCommentsKeepInputOrderAcrossCleanAndRejected(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithComment("first")),
		testsupport.NewRecord("s", "u2", testsupport.WithRemoveFragment()),
		testsupport.NewRecord("s", "u3", testsupport.WithRemoveFragment(), testsupport.WithComment("third")),
	}
	result := consensus.Evaluate(records, 0.6)
	if !reflect.DeepEqual(result.Comments, []string{"first", "third"}) {
		t.Fatalf("unexpected comments: %v", result.Comments)
	}
}

func TestEvaluateDominantSubsetOfAll(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithRemoveFragment(), testsupport.WithEnd(validation.DecisionEdit)),
		testsupport.NewRecord("s", "u2", testsupport.WithTitle(validation.DecisionEdit)),
		testsupport.NewRecord("s", "u3", testsupport.WithEnd(validation.DecisionEdit)),
		testsupport.NewRecord("s", "u4"),
	}
	result := consensus.Evaluate(records, 0.6)
	seen := map[consensus.Issue]bool{}
	for _, issue := range result.AllIssues {
		seen[issue] = true
	}
	for _, issue := range result.DominantIssues {
		if !seen[issue] {
			t.Fatalf("dominant issue %s missing from all issues %v", issue, result.AllIssues)
		}
	}
}

func TestEvaluateThresholdMonotonicity(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1"),
		testsupport.NewRecord("s", "u2"),
		testsupport.NewRecord("s", "u3"),
		testsupport.NewRecord("s", "u4", testsupport.WithRemoveFragment()),
		testsupport.NewRecord("s", "u5", testsupport.WithRemoveFragment()),
	}
	previous := consensus.StatusAccepted
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.6, 0.61, 0.8, 1} {
		status := consensus.Evaluate(records, threshold).Status
		if previous == consensus.StatusConflict && status != consensus.StatusConflict {
			t.Fatalf("threshold %v moved status from CONFLICT back to %s", threshold, status)
		}
		previous = status
	}
	if previous != consensus.StatusConflict {
		t.Fatalf("expected CONFLICT at threshold 1, got %s", previous)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	records := []validation.Record{
		testsupport.NewRecord("s", "u1", testsupport.WithComment("ok")),
		testsupport.NewRecord("s", "u2", testsupport.WithStart(validation.DecisionEdit), testsupport.WithComment("late start")),
		testsupport.NewRecord("s", "u2", testsupport.WithConcepts(testsupport.Remove("x"))),
	}
	first := consensus.Evaluate(records, 0.6)
	second := consensus.Evaluate(records, 0.6)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results:\n%+v\n%+v", first, second)
	}
}

func TestNewRejectsInvalidThreshold(t *testing.T) {
	for _, threshold := range []float64{0, -0.1, 1.01} {
		if _, err := consensus.New(threshold); !errors.Is(err, consensus.ErrInvalidThreshold) {
			t.Fatalf("threshold %v: expected ErrInvalidThreshold, got %v", threshold, err)
		}
	}
	evaluator, err := consensus.New(1)
	if err != nil {
		t.Fatalf("New(1): %v", err)
	}
	if evaluator.Threshold() != 1 {
		t.Fatalf("unexpected threshold %v", evaluator.Threshold())
	}
}

func TestEvaluateAllSortsSegments(t *testing.T) {
	evaluator, err := consensus.New(consensus.DefaultThreshold)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	store := map[string][]validation.Record{
		"seg-b": {testsupport.NewRecord("seg-b", "u1", testsupport.WithRemoveFragment())},
		"seg-a": {testsupport.NewRecord("seg-a", "u1")},
	}
	results := evaluator.EvaluateAll(store)
	if len(results) != 2 || results[0].SegmentID != "seg-a" || results[1].SegmentID != "seg-b" {
		t.Fatalf("unexpected order: %+v", results)
	}
	if results[0].Status != consensus.StatusAccepted || results[1].Status != consensus.StatusRejected {
		t.Fatalf("unexpected statuses: %s %s", results[0].Status, results[1].Status)
	}
}

func TestMostCommonKeepsFirstSeenOrderOnTies(t *testing.T) {
	counts := consensus.CountIssues([]consensus.Issue{
		consensus.IssueEditEnd,
		consensus.IssueEditStart,
		consensus.IssueEditStart,
		consensus.IssueRemoveConcept,
	})
	got := consensus.MostCommon(counts)
	want := []consensus.IssueCount{
		{Issue: consensus.IssueEditStart, Count: 2},
		{Issue: consensus.IssueEditEnd, Count: 1},
		{Issue: consensus.IssueRemoveConcept, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MostCommon = %v, want %v", got, want)
	}
}

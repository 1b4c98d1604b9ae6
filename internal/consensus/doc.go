// Package consensus decides, from every validation submitted for a segment,
// whether the crowd accepted it, rejected it, or disagreed about it.
//
// A record is clean only when it approves title, start and end explicitly,
// keeps every concept, and does not remove the fragment. Clean and not-clean
// votes are compared against an explicit threshold: the clean ratio is tested
// first, then the reject ratio, and anything in between is a conflict. Issue
// tags are collected from not-clean records only, and an issue is dominant
// when at least half of the dissenters raised it.
//
// Evaluation is a pure function of the records and the threshold. Nothing is
// cached between calls, so results can be recomputed at will.
package consensus

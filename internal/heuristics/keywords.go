package heuristics

import (
	"segcheck/internal/consensus"
	"segcheck/internal/discrepancy"
	"segcheck/internal/textutil"
)

const defaultScanChars = 100

// ChatterScanner checks whether segments whose start time was edited open
// with interviewer chatter.
type ChatterScanner struct {
	Keywords  []string
	ScanChars int
}

func (s *ChatterScanner) Name() string { return "chatter" }

func (s *ChatterScanner) Scan(in Input) Observation {
	scanChars := s.ScanChars
	if scanChars <= 0 {
		scanChars = defaultScanChars
	}
	obs := Observation{Description: "start-edited segments opening with chatter keywords"}
	hits := newHitCounter()
	for _, f := range discrepancy.Filter(in.Findings, discrepancy.WithIssue(consensus.IssueEditStart)) {
		obs.Considered++
		found := textutil.MatchKeywords(textutil.Prefix(f.Text(), scanChars), s.Keywords)
		if len(found) == 0 {
			continue
		}
		obs.Matched++
		for _, keyword := range found {
			hits.add(keyword)
		}
	}
	obs.Hits = hits.result()
	return obs
}

// RemovalScanner checks whether comments on removed fragments say the
// fragment is only an introduction or has no content.
type RemovalScanner struct {
	Keywords []string
	Samples  int
}

func (s *RemovalScanner) Name() string { return "removal" }

func (s *RemovalScanner) Scan(in Input) Observation {
	obs := Observation{Description: "fragment removals whose comment mentions a removal keyword"}
	hits := newHitCounter()
	samples := newSampler(s.Samples)
	for _, f := range discrepancy.Filter(in.Findings, discrepancy.WithIssue(consensus.IssueRemoveFragment)) {
		obs.Considered++
		samples.add(f.Comment)
		found := textutil.MatchKeywords(f.Comment, s.Keywords)
		if len(found) == 0 {
			continue
		}
		obs.Matched++
		for _, keyword := range found {
			hits.add(keyword)
		}
	}
	obs.Hits = hits.result()
	obs.Samples = samples.values
	return obs
}

// KeywordScanner counts rejected comments mentioning each keyword.
type KeywordScanner struct {
	Keywords []string
}

func (s *KeywordScanner) Name() string { return "keywords" }

func (s *KeywordScanner) Scan(in Input) Observation {
	obs := Observation{Description: "rejection comments mentioning configured keywords"}
	hits := newHitCounter()
	for _, f := range in.Findings {
		if !f.Rejected || f.Comment == "" {
			continue
		}
		obs.Considered++
		found := textutil.MatchKeywords(f.Comment, s.Keywords)
		if len(found) == 0 {
			continue
		}
		obs.Matched++
		for _, keyword := range found {
			hits.add(keyword)
		}
	}
	obs.Hits = hits.result()
	return obs
}

// sampler keeps distinct non-empty values up to a limit. A limit <= 0 keeps all.
type sampler struct {
	limit  int
	seen   map[string]struct{}
	values []string
}

func newSampler(limit int) *sampler {
	return &sampler{limit: limit, seen: make(map[string]struct{})}
}

func (s *sampler) add(value string) {
	if value == "" {
		return
	}
	if s.limit > 0 && len(s.values) >= s.limit {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.values = append(s.values, value)
}

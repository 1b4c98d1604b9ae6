package heuristics

import (
	"segcheck/internal/textutil"
)

// ThemeScanner groups rejection comments with similar wording. Each comment
// joins the first group whose representative reaches Similarity.
type ThemeScanner struct {
	Similarity float64
	Samples    int
}

func (s *ThemeScanner) Name() string { return "themes" }

type theme struct {
	representative string
	fingerprint    *textutil.Fingerprint
	size           int
}

func (s *ThemeScanner) Scan(in Input) Observation {
	obs := Observation{Description: "groups of similar rejection comments"}
	var themes []*theme
	for _, f := range in.Findings {
		if !f.Rejected || f.Comment == "" {
			continue
		}
		fp := textutil.NewFingerprint(f.Comment)
		if fp.TokenCount() == 0 {
			continue
		}
		obs.Considered++
		var joined bool
		for _, t := range themes {
			if textutil.CosineSimilarity(t.fingerprint, fp) >= s.Similarity {
				t.size++
				joined = true
				break
			}
		}
		if !joined {
			themes = append(themes, &theme{representative: f.Comment, fingerprint: fp, size: 1})
		}
	}

	hits := []Hit{}
	for _, t := range themes {
		if t.size < 2 {
			continue
		}
		obs.Matched += t.size
		hits = append(hits, Hit{Label: t.representative, Count: t.size})
	}
	if s.Samples > 0 && len(hits) > s.Samples {
		hits = hits[:s.Samples]
	}
	obs.Hits = hits
	return obs
}

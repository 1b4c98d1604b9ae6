package archive

import (
	"fmt"

	"segcheck/internal/consensus"
)

// Metric is one row of a run comparison.
type Metric struct {
	Name   string  `json:"name" yaml:"name"`
	Base   float64 `json:"base" yaml:"base"`
	Target float64 `json:"target" yaml:"target"`
	Delta  float64 `json:"delta" yaml:"delta"`
	// Ratio marks values that are fractions rather than counts.
	Ratio bool `json:"ratio,omitempty" yaml:"ratio,omitempty"`
}

// Comparison lists the metric differences between two runs.
type Comparison struct {
	Base    Run      `json:"base" yaml:"base"`
	Target  Run      `json:"target" yaml:"target"`
	Metrics []Metric `json:"metrics" yaml:"metrics"`
}

// Compare computes target minus base for every stored aggregate.
func Compare(base, target Run) Comparison {
	cmp := Comparison{Base: base, Target: target}
	add := func(name string, b, t float64, ratio bool) {
		cmp.Metrics = append(cmp.Metrics, Metric{Name: name, Base: b, Target: t, Delta: t - b, Ratio: ratio})
	}

	add("segments", float64(base.Segments), float64(target.Segments), false)
	add("records", float64(base.Records), float64(target.Records), false)
	add("skipped", float64(base.Skipped), float64(target.Skipped), false)
	for _, status := range consensus.Statuses {
		add(string(status), float64(base.StatusCount(status)), float64(target.StatusCount(status)), false)
	}
	add("acceptance rate", base.AcceptanceRate(), target.AcceptanceRate(), true)
	for _, issue := range consensus.AllIssues {
		add(fmt.Sprintf("dominant %s", issue), float64(base.Issue(issue).Dominant), float64(target.Issue(issue).Dominant), false)
	}
	for _, issue := range consensus.AllIssues {
		add(fmt.Sprintf("occurrences %s", issue), float64(base.Issue(issue).Occurrences), float64(target.Issue(issue).Occurrences), false)
	}
	return cmp
}

// Metric returns the named metric.
func (c Comparison) Metric(name string) (Metric, bool) {
	for _, m := range c.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

package heuristics

import (
	"segcheck/internal/config"
	"segcheck/internal/discrepancy"
)

// Input is what every scanner receives.
type Input struct {
	Findings []discrepancy.Finding
}

// Hit is one matched pattern and how often it matched.
type Hit struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Observation is the outcome of one scan.
type Observation struct {
	Scanner     string   `json:"scanner" yaml:"scanner"`
	Description string   `json:"description" yaml:"description"`
	Considered  int      `json:"considered" yaml:"considered"`
	Matched     int      `json:"matched" yaml:"matched"`
	Hits        []Hit    `json:"hits" yaml:"hits"`
	Samples     []string `json:"samples,omitempty" yaml:"samples,omitempty"`
}

// Scanner inspects findings and reports one observation.
type Scanner interface {
	Name() string
	Scan(Input) Observation
}

// Registry holds the enabled scanners in registration order.
type Registry struct {
	scanners []Scanner
}

// NewRegistry returns an empty registry.
func NewRegistry(scanners ...Scanner) *Registry {
	r := &Registry{}
	for _, s := range scanners {
		r.Register(s)
	}
	return r
}

// FromConfig builds the registry described by the [heuristics] section.
// samples bounds the sample comments kept by scanners that collect them.
func FromConfig(cfg config.Heuristics, samples int) *Registry {
	r := NewRegistry()
	if !cfg.Enabled {
		return r
	}
	if len(cfg.ChatterKeywords) > 0 {
		r.Register(&ChatterScanner{Keywords: cfg.ChatterKeywords, ScanChars: cfg.ChatterScanChars})
	}
	if len(cfg.RemovalKeywords) > 0 {
		r.Register(&RemovalScanner{Keywords: cfg.RemovalKeywords, Samples: samples})
	}
	if cfg.EntityScan {
		r.Register(&EntityScanner{})
	}
	if len(cfg.CommentKeywords) > 0 {
		r.Register(&KeywordScanner{Keywords: cfg.CommentKeywords})
	}
	if cfg.SimilarComments > 0 {
		r.Register(&ThemeScanner{Similarity: cfg.SimilarComments, Samples: samples})
	}
	return r
}

// Register appends s. Nil scanners are ignored.
func (r *Registry) Register(s Scanner) {
	if s == nil {
		return
	}
	r.scanners = append(r.scanners, s)
}

// Names lists the registered scanner names.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.scanners))
	for _, s := range r.scanners {
		names = append(names, s.Name())
	}
	return names
}

// Len returns the number of registered scanners.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.scanners)
}

// Run applies every scanner to in.
func (r *Registry) Run(in Input) []Observation {
	if r == nil {
		return nil
	}
	observations := make([]Observation, 0, len(r.scanners))
	for _, s := range r.scanners {
		obs := s.Scan(in)
		obs.Scanner = s.Name()
		if obs.Hits == nil {
			obs.Hits = []Hit{}
		}
		observations = append(observations, obs)
	}
	return observations
}

// hitCounter counts labels in first-seen order.
type hitCounter struct {
	index map[string]int
	hits  []Hit
}

func newHitCounter() *hitCounter {
	return &hitCounter{index: make(map[string]int)}
}

func (c *hitCounter) add(label string) {
	if i, ok := c.index[label]; ok {
		c.hits[i].Count++
		return
	}
	c.index[label] = len(c.hits)
	c.hits = append(c.hits, Hit{Label: label, Count: 1})
}

func (c *hitCounter) result() []Hit {
	if c.hits == nil {
		return []Hit{}
	}
	return c.hits
}

package report

import (
	"segcheck/internal/archive"
	"segcheck/internal/discrepancy"
	"segcheck/internal/heuristics"
	"segcheck/internal/loader"
)

// Analysis is the full consensus report.
type Analysis struct {
	RunID       string           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Threshold   float64          `json:"threshold" yaml:"threshold"`
	Records     int              `json:"records" yaml:"records"`
	Segments    loader.Stats     `json:"segment_files" yaml:"segment_files"`
	Validations loader.Stats     `json:"validation_files" yaml:"validation_files"`
	Summary     ConsensusSummary `json:"summary" yaml:"summary"`
	Rows        []Row            `json:"rows" yaml:"rows"`
}

// Discrepancies is the per-record discrepancy report.
type Discrepancies struct {
	Summary      discrepancy.Summary      `json:"summary" yaml:"summary"`
	Observations []heuristics.Observation `json:"heuristics" yaml:"heuristics"`
	Findings     []discrepancy.Finding    `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// History lists archived runs.
type History struct {
	Runs []archive.Run `json:"runs" yaml:"runs"`
}

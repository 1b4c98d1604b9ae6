package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConsensus(); err != nil {
		return err
	}
	if err := c.validateDiscrepancy(); err != nil {
		return err
	}
	if err := c.validateHeuristics(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.SegmentsDir == "" {
		return errors.New("paths.segments_dir must be set")
	}
	if c.Paths.ValidationsDir == "" {
		return errors.New("paths.validations_dir must be set")
	}
	return nil
}

func (c *Config) validateConsensus() error {
	if c.Consensus.Threshold <= 0 || c.Consensus.Threshold > 1 {
		return fmt.Errorf("consensus.threshold must be in (0, 1], got %v", c.Consensus.Threshold)
	}
	return nil
}

func (c *Config) validateDiscrepancy() error {
	if c.Discrepancy.CommentMinLength < 0 {
		return errors.New("discrepancy.comment_min_length must be >= 0")
	}
	return nil
}

func (c *Config) validateHeuristics() error {
	if c.Heuristics.ChatterScanChars < 0 {
		return errors.New("heuristics.chatter_scan_chars must be positive")
	}
	if c.Heuristics.SimilarComments < 0 || c.Heuristics.SimilarComments > 1 {
		return errors.New("heuristics.similar_comments must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("report.format must be one of text, json, yaml (got %q)", c.Report.Format)
	}
	if c.Report.SnippetLength < 0 {
		return errors.New("report.snippet_length must be positive")
	}
	if c.Report.SampleComments < 0 {
		return errors.New("report.sample_comments must be >= 0")
	}
	if c.Report.TopConcepts < 0 {
		return errors.New("report.top_concepts must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}

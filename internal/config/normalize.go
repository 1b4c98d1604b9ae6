package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeHeuristics()
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SegmentsDir, err = expandPath(strings.TrimSpace(c.Paths.SegmentsDir)); err != nil {
		return fmt.Errorf("paths.segments_dir: %w", err)
	}
	if c.Paths.ValidationsDir, err = expandPath(strings.TrimSpace(c.Paths.ValidationsDir)); err != nil {
		return fmt.Errorf("paths.validations_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHeuristics() {
	c.Heuristics.ChatterKeywords = normalizeKeywords(c.Heuristics.ChatterKeywords)
	c.Heuristics.RemovalKeywords = normalizeKeywords(c.Heuristics.RemovalKeywords)
	c.Heuristics.CommentKeywords = normalizeKeywords(c.Heuristics.CommentKeywords)
	if c.Heuristics.ChatterScanChars == 0 {
		c.Heuristics.ChatterScanChars = defaultChatterScanChars
	}
}

func (c *Config) normalizeReport() {
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if c.Report.Format == "" {
		c.Report.Format = defaultReportFormat
	}
	if c.Report.SnippetLength == 0 {
		c.Report.SnippetLength = defaultSnippetLength
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeKeywords trims entries and drops blanks and duplicates, keeping order.
func normalizeKeywords(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

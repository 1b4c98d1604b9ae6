package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"segcheck/internal/config"
	"segcheck/internal/fileutil"
	"segcheck/internal/report"
)

// reportTarget is where a command writes its report.
type reportTarget struct {
	w      io.Writer
	color  bool
	commit func() error
	abort  func()
}

// openReportTarget returns stdout, or an atomic file at path when one is
// given. Colour is only used for terminals.
func openReportTarget(cmd *cobra.Command, path string) (*reportTarget, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		out := cmd.OutOrStdout()
		return &reportTarget{
			w:      out,
			color:  report.ShouldColorize(out),
			commit: func() error { return nil },
			abort:  func() {},
		}, nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}
	file, err := fileutil.CreateAtomic(expanded, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &reportTarget{w: file, commit: file.Commit, abort: file.Abort}, nil
}

// resolveFormat prefers the flag value over the configured report format.
func resolveFormat(flagValue string, cfg *config.Config) (report.Format, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		value = cfg.Report.Format
	}
	return report.ParseFormat(value)
}

// resolveDir prefers the flag value over the configured directory.
func resolveDir(flagValue, configured string) (string, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		return configured, nil
	}
	expanded, err := config.ExpandPath(value)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", value, err)
	}
	return expanded, nil
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

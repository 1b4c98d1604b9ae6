package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"segcheck/internal/archive"
	"segcheck/internal/config"
	"segcheck/internal/consensus"
	"segcheck/internal/loader"
	"segcheck/internal/logging"
	"segcheck/internal/report"
)

type analyzeOptions struct {
	segmentsDir    string
	validationsDir string
	threshold      float64
	format         string
	output         string
	all            bool
	statuses       []string
	record         bool
	label          string
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Determine crowd consensus per segment",
		Long: `Load segment metadata and validation records, classify every segment as
ACCEPTED, REJECTED or CONFLICT, and report the dominant rejection reasons.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				opts.threshold = cfg.Consensus.Threshold
			}
			if !cmd.Flags().Changed("all") {
				opts.all = cfg.Report.IncludeUnvalidated
			}
			return runAnalyze(cmd, cfg, logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.segmentsDir, "segments", "", "Directory with enriched segment files")
	cmd.Flags().StringVar(&opts.validationsDir, "validations", "", "Directory with validation files")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", consensus.DefaultThreshold, "Fraction of agreeing votes required for ACCEPTED or REJECTED")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Include known segments without validations as NO_DATA")
	cmd.Flags().StringSliceVar(&opts.statuses, "status", nil, "Only list segments with these statuses (repeatable)")
	cmd.Flags().BoolVar(&opts.record, "record", false, "Store the run summary in the archive")
	cmd.Flags().StringVar(&opts.label, "label", "", "Label stored with the archived run")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts analyzeOptions) error {
	format, err := resolveFormat(opts.format, cfg)
	if err != nil {
		return err
	}
	statuses, err := parseStatuses(opts.statuses)
	if err != nil {
		return err
	}
	evaluator, err := consensus.New(opts.threshold)
	if err != nil {
		return err
	}
	segmentsDir, err := resolveDir(opts.segmentsDir, cfg.Paths.SegmentsDir)
	if err != nil {
		return err
	}
	validationsDir, err := resolveDir(opts.validationsDir, cfg.Paths.ValidationsDir)
	if err != nil {
		return err
	}

	runCtx := cmd.Context()

	segments, segmentStats, err := loader.LoadSegments(runCtx, segmentsDir, logger)
	if err != nil {
		return fmt.Errorf("load segments: %w", err)
	}
	validations, validationStats, err := loader.LoadValidations(runCtx, validationsDir, logger)
	if err != nil {
		return fmt.Errorf("load validations: %w", err)
	}

	results := evaluator.EvaluateAll(validations.BySegment())
	if opts.all {
		results = appendUnvalidated(results, segments, evaluator)
	}

	analysis := report.Analysis{
		Threshold:   evaluator.Threshold(),
		Records:     validations.Len(),
		Segments:    segmentStats,
		Validations: validationStats,
	}
	rows := report.BuildRows(results, segments, cfg.Report.SnippetLength)
	analysis.Summary = report.Summarize(rows, cfg.Report.SampleComments)
	analysis.Rows = report.FilterRows(rows, statuses...)

	if opts.record || cfg.Archive.Enabled {
		run := archive.NewRun(results, evaluator.Threshold())
		run.Label = strings.TrimSpace(opts.label)
		run.SegmentsDir = segmentsDir
		run.ValidationsDir = validationsDir
		run.Skipped = segmentStats.Skipped() + validationStats.Skipped()
		stored, err := recordRun(runCtx, cfg, run)
		if err != nil {
			return err
		}
		analysis.RunID = stored.ID
		logging.WithContext(logging.WithRunID(runCtx, stored.ID), logger).Info("run recorded",
			logging.Int("segments", stored.Segments),
			logging.String("label", stored.Label),
		)
	}

	target, err := openReportTarget(cmd, opts.output)
	if err != nil {
		return err
	}
	if err := report.WriteAnalysis(target.w, format, analysis, report.Options{Color: target.color}); err != nil {
		target.abort()
		return fmt.Errorf("write report: %w", err)
	}
	return target.commit()
}

func recordRun(ctx context.Context, cfg *config.Config, run archive.Run) (archive.Run, error) {
	store, err := archive.Open(cfg)
	if err != nil {
		return archive.Run{}, fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()
	stored, err := store.Record(ctx, run)
	if err != nil {
		return archive.Run{}, fmt.Errorf("record run: %w", err)
	}
	return stored, nil
}

// appendUnvalidated adds a NO_DATA result for every known segment that has
// no validation records and keeps the results sorted by segment id.
func appendUnvalidated(results []consensus.SegmentResult, segments *loader.SegmentStore, evaluator *consensus.Evaluator) []consensus.SegmentResult {
	seen := make(map[string]struct{}, len(results))
	for _, result := range results {
		seen[result.SegmentID] = struct{}{}
	}
	added := false
	for _, id := range segments.IDs() {
		if _, ok := seen[id]; ok {
			continue
		}
		results = append(results, consensus.SegmentResult{SegmentID: id, Result: evaluator.Evaluate(nil)})
		added = true
	}
	if added {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].SegmentID < results[j].SegmentID
		})
	}
	return results
}

func parseStatuses(values []string) ([]consensus.Status, error) {
	var statuses []consensus.Status
	for _, value := range values {
		name := strings.ToUpper(strings.TrimSpace(value))
		if name == "" {
			continue
		}
		status, ok := consensus.ParseStatus(name)
		if !ok {
			return nil, fmt.Errorf("unknown status %q (expected ACCEPTED, REJECTED, CONFLICT or NO_DATA)", value)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

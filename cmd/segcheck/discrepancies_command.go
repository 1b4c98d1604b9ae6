package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"segcheck/internal/config"
	"segcheck/internal/discrepancy"
	"segcheck/internal/heuristics"
	"segcheck/internal/loader"
	"segcheck/internal/logging"
	"segcheck/internal/report"
)

type discrepancyOptions struct {
	segmentsDir    string
	validationsDir string
	commentLength  int
	noCommentGate  bool
	requireSegment bool
	noHeuristics   bool
	findings       bool
	format         string
	output         string
}

func newDiscrepanciesCommand(ctx *commandContext) *cobra.Command {
	var opts discrepancyOptions

	cmd := &cobra.Command{
		Use:   "discrepancies",
		Short: "Analyze individual validation records",
		Long: `Judge every validation record on its own, count issue tags and removed
concepts, and run the configured heuristic scans over the comments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup()
			if err != nil {
				return err
			}
			analysis := discrepancy.Options{
				CommentGate:      cfg.Discrepancy.CommentGate && !opts.noCommentGate,
				CommentMinLength: cfg.Discrepancy.CommentMinLength,
				RequireSegment:   cfg.Discrepancy.RequireSegment || opts.requireSegment,
			}
			if cmd.Flags().Changed("comment-length") {
				if opts.commentLength < 0 {
					return fmt.Errorf("comment length must be non-negative, got %d", opts.commentLength)
				}
				analysis.CommentMinLength = opts.commentLength
			}
			heuristicsCfg := cfg.Heuristics
			if opts.noHeuristics {
				heuristicsCfg.Enabled = false
			}
			return runDiscrepancies(cmd, cfg, logger, opts, analysis, heuristics.FromConfig(heuristicsCfg, cfg.Report.SampleComments))
		},
	}

	cmd.Flags().StringVar(&opts.segmentsDir, "segments", "", "Directory with enriched segment files")
	cmd.Flags().StringVar(&opts.validationsDir, "validations", "", "Directory with validation files")
	cmd.Flags().IntVar(&opts.commentLength, "comment-length", discrepancy.DefaultCommentMinLength, "Comments longer than this count as a rejection")
	cmd.Flags().BoolVar(&opts.noCommentGate, "no-comment-gate", false, "Judge records on their decisions only")
	cmd.Flags().BoolVar(&opts.requireSegment, "require-segment", false, "Skip records whose segment metadata is unknown")
	cmd.Flags().BoolVar(&opts.noHeuristics, "no-heuristics", false, "Disable the heuristic scans")
	cmd.Flags().BoolVar(&opts.findings, "findings", false, "Include every rejected record in json and yaml output")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	return cmd
}

func runDiscrepancies(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts discrepancyOptions, analysis discrepancy.Options, registry *heuristics.Registry) error {
	format, err := resolveFormat(opts.format, cfg)
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

	segments, _, err := loader.LoadSegments(runCtx, segmentsDir, logger)
	if err != nil {
		return fmt.Errorf("load segments: %w", err)
	}
	validations, _, err := loader.LoadValidations(runCtx, validationsDir, logger)
	if err != nil {
		return fmt.Errorf("load validations: %w", err)
	}

	findings := discrepancy.Analyze(validations.All(), segments, analysis)
	if dropped := validations.Len() - len(findings); dropped > 0 {
		logging.NewComponentLogger(logger, "discrepancy").Info("records without segment metadata skipped",
			logging.Int("records", dropped),
		)
	}

	doc := report.Discrepancies{
		Summary:      discrepancy.Summarize(findings, cfg.Report.TopConcepts),
		Observations: registry.Run(heuristics.Input{Findings: findings}),
	}
	if opts.findings {
		doc.Findings = discrepancy.Filter(findings, func(f discrepancy.Finding) bool { return f.Rejected })
	}

	target, err := openReportTarget(cmd, opts.output)
	if err != nil {
		return err
	}
	if err := report.WriteDiscrepancies(target.w, format, doc, report.Options{Color: target.color}); err != nil {
		target.abort()
		return fmt.Errorf("write report: %w", err)
	}
	return target.commit()
}

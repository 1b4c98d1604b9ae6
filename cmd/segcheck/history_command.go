package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"segcheck/internal/archive"
	"segcheck/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var format string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and compare archived runs",
	}
	historyCmd.PersistentFlags().StringVar(&format, "format", "", "Output format (text, json, yaml)")

	historyCmd.AddCommand(newHistoryListCommand(ctx, &format))
	historyCmd.AddCommand(newHistoryShowCommand(ctx, &format))
	historyCmd.AddCommand(newHistoryCompareCommand(ctx, &format))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext, format *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withArchive(cmd, *format, func(store *archive.Store, f report.Format, opts report.Options) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return report.WriteHistory(cmd.OutOrStdout(), f, runs, opts)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withArchive(cmd, *format, func(store *archive.Store, f report.Format, opts report.Options) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return lookupError(args[0], err)
				}
				return report.WriteRun(cmd.OutOrStdout(), f, run, opts)
			})
		},
	}
}

func newHistoryCompareCommand(ctx *commandContext, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "compare BASE TARGET",
		Short: "Compare two recorded runs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withArchive(cmd, *format, func(store *archive.Store, f report.Format, opts report.Options) error {
				base, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return lookupError(args[0], err)
				}
				target, err := store.Get(cmd.Context(), args[1])
				if err != nil {
					return lookupError(args[1], err)
				}
				return report.WriteComparison(cmd.OutOrStdout(), f, archive.Compare(base, target), opts)
			})
		},
	}
}

// withArchive opens the run archive for the duration of fn.
func (c *commandContext) withArchive(cmd *cobra.Command, format string, fn func(*archive.Store, report.Format, report.Options) error) error {
	cfg, _, err := c.setup()
	if err != nil {
		return err
	}
	f, err := resolveFormat(format, cfg)
	if err != nil {
		return err
	}
	store, err := archive.Open(cfg)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()
	return fn(store, f, report.Options{Color: report.ShouldColorize(cmd.OutOrStdout())})
}

func lookupError(id string, err error) error {
	switch {
	case errors.Is(err, archive.ErrAmbiguousID):
		return fmt.Errorf("run %s: id prefix matches more than one run; use more characters", id)
	case errors.Is(err, archive.ErrRunNotFound):
		return fmt.Errorf("run %s: %w", id, archive.ErrRunNotFound)
	default:
		return fmt.Errorf("load run %s: %w", id, err)
	}
}

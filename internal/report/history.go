package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"segcheck/internal/archive"
	"segcheck/internal/consensus"
)

const historyTimeLayout = "2006-01-02 15:04"

// WriteHistory writes a list of archived runs.
func WriteHistory(w io.Writer, format Format, runs []archive.Run, opts Options) error {
	if runs == nil {
		runs = []archive.Run{}
	}
	if format != FormatText {
		return writeData(w, format, History{Runs: runs})
	}
	p := newPalette(w, opts.Color)
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, p.muted("No runs recorded."))
		return err
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ShortID(),
			run.CreatedAt.In(time.Local).Format(historyTimeLayout),
			dash(run.Label),
			formatPercent(run.Threshold),
			strconv.Itoa(run.Segments),
			strconv.Itoa(run.StatusCount(consensus.StatusAccepted)),
			strconv.Itoa(run.StatusCount(consensus.StatusRejected)),
			strconv.Itoa(run.StatusCount(consensus.StatusConflict)),
		})
	}
	_, err := fmt.Fprintln(w, renderTable([]column{
		{header: "ID"},
		{header: "CREATED"},
		{header: "LABEL"},
		{header: "THRESHOLD", align: alignRight},
		{header: "SEGMENTS", align: alignRight},
		{header: "ACCEPTED", align: alignRight},
		{header: "REJECTED", align: alignRight},
		{header: "CONFLICT", align: alignRight},
	}, rows))
	return err
}

// WriteRun writes one archived run.
func WriteRun(w io.Writer, format Format, run archive.Run, opts Options) error {
	if format != FormatText {
		return writeData(w, format, run)
	}
	p := newPalette(w, opts.Color)
	var b strings.Builder
	b.WriteString(p.sectionHeader("Run " + run.ID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Created: %s\n", run.CreatedAt.In(time.Local).Format(time.RFC3339))
	if run.Label != "" {
		fmt.Fprintf(&b, "Label: %s\n", run.Label)
	}
	fmt.Fprintf(&b, "Threshold: %s\n", formatPercent(run.Threshold))
	if run.SegmentsDir != "" {
		fmt.Fprintf(&b, "Segments dir: %s\n", run.SegmentsDir)
	}
	if run.ValidationsDir != "" {
		fmt.Fprintf(&b, "Validations dir: %s\n", run.ValidationsDir)
	}
	fmt.Fprintf(&b, "Segments: %d  Records: %d  Skipped: %d\n\n", run.Segments, run.Records, run.Skipped)

	statusRows := make([][]string, 0, len(run.Statuses))
	for _, sc := range run.Statuses {
		statusRows = append(statusRows, []string{p.status(sc.Status), strconv.Itoa(sc.Count), formatPercent(ratio(sc.Count, run.Segments))})
	}
	b.WriteString(renderTable([]column{
		{header: "STATUS"},
		{header: "SEGMENTS", align: alignRight},
		{header: "SHARE", align: alignRight},
	}, statusRows))
	b.WriteString("\n")

	issueRows := make([][]string, 0, len(run.Issues))
	for _, it := range run.Issues {
		issueRows = append(issueRows, []string{string(it.Issue), strconv.Itoa(it.Dominant), strconv.Itoa(it.Occurrences)})
	}
	b.WriteString(renderTable([]column{
		{header: "ISSUE"},
		{header: "DOMINANT", align: alignRight},
		{header: "OCCURRENCES", align: alignRight},
	}, issueRows))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteComparison writes the metric table of two runs.
func WriteComparison(w io.Writer, format Format, cmp archive.Comparison, opts Options) error {
	if format != FormatText {
		return writeData(w, format, cmp)
	}
	p := newPalette(w, opts.Color)
	var b strings.Builder
	b.WriteString(p.sectionHeader(fmt.Sprintf("Compare %s -> %s", runName(cmp.Base), runName(cmp.Target))))
	b.WriteString("\n")
	rows := make([][]string, 0, len(cmp.Metrics))
	for _, m := range cmp.Metrics {
		rows = append(rows, []string{
			m.Name,
			formatMetric(m.Base, m.Ratio),
			formatMetric(m.Target, m.Ratio),
			p.delta(m.Delta, formatDelta(m.Delta, m.Ratio)),
		})
	}
	b.WriteString(renderTable([]column{
		{header: "METRIC"},
		{header: "BASE", align: alignRight},
		{header: "TARGET", align: alignRight},
		{header: "DELTA", align: alignRight},
	}, rows))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func runName(run archive.Run) string {
	if run.Label != "" {
		return fmt.Sprintf("%s (%s)", run.ShortID(), run.Label)
	}
	return run.ShortID()
}

func formatMetric(value float64, isRatio bool) string {
	if isRatio {
		return formatPercent(value)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatDelta(value float64, isRatio bool) string {
	formatted := formatMetric(value, isRatio)
	if value > 0 {
		return "+" + formatted
	}
	return formatted
}

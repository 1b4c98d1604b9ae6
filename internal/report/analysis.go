package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"segcheck/internal/consensus"
	"segcheck/internal/textutil"
)

const (
	commentColumnWidth = 60
	snippetColumnWidth = 50
)

// WriteAnalysis writes the consensus report in the requested format.
func WriteAnalysis(w io.Writer, format Format, report Analysis, opts Options) error {
	if format != FormatText {
		if report.Rows == nil {
			report.Rows = []Row{}
		}
		return writeData(w, format, report)
	}
	_, err := io.WriteString(w, renderAnalysis(report, newPalette(w, opts.Color)))
	return err
}

func renderAnalysis(report Analysis, p palette) string {
	var b strings.Builder
	b.WriteString(p.sectionHeader("Crowd consensus report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Threshold: %s  Segments: %d  Records: %d  Skipped: %d\n",
		formatPercent(report.Threshold),
		report.Summary.Segments,
		report.Records,
		report.Segments.Skipped()+report.Validations.Skipped(),
	)
	if report.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", report.RunID)
	}

	b.WriteString("\n")
	b.WriteString(p.sectionHeader("Segment status distribution"))
	b.WriteString("\n")
	if len(report.Summary.Distribution) == 0 {
		b.WriteString(p.muted("No validated segments."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(report.Summary.Distribution))
		for _, sc := range report.Summary.Distribution {
			rows = append(rows, []string{
				p.status(sc.Status),
				strconv.Itoa(sc.Count),
				formatPercent(ratio(sc.Count, report.Summary.Segments)),
			})
		}
		b.WriteString(renderTable([]column{
			{header: "STATUS"},
			{header: "SEGMENTS", align: alignRight},
			{header: "SHARE", align: alignRight},
		}, rows))
		b.WriteString("\n")
	}

	if report.Summary.Count(consensus.StatusRejected) > 0 {
		b.WriteString("\n")
		b.WriteString(p.sectionHeader(fmt.Sprintf("Rejected segments (consensus >= %s)", formatPercent(report.Threshold))))
		b.WriteString("\n")
		if len(report.Summary.RejectionReasons) == 0 {
			b.WriteString("Rejections were miscellaneous, no dominant technical reason.\n")
		} else {
			rows := make([][]string, 0, len(report.Summary.RejectionReasons))
			for _, reason := range report.Summary.RejectionReasons {
				rows = append(rows, []string{string(reason.Issue), strconv.Itoa(reason.Count)})
			}
			b.WriteString(renderTable([]column{
				{header: "PRIMARY REASON"},
				{header: "SEGMENTS", align: alignRight},
			}, rows))
			b.WriteString("\n")
		}
		writeEvidence(&b, "Why are segments being removed?", report.Summary.Removals)
		writeEvidence(&b, "Why are start times being edited?", report.Summary.StartEdits)
	}

	if report.Summary.Conflicts.Cases > 0 {
		b.WriteString("\n")
		b.WriteString(p.sectionHeader(fmt.Sprintf("Conflict segments (%d cases)", report.Summary.Conflicts.Cases)))
		b.WriteString("\n")
		b.WriteString("Reviewers disagreed on these segments; boundaries may be subjective.\n")
		writeSamples(&b, report.Summary.Conflicts.Samples)
	}

	if len(report.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(p.sectionHeader("Segments"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(report.Rows))
		for _, row := range report.Rows {
			rows = append(rows, []string{
				row.SegmentID,
				row.SourceFile,
				p.status(row.Status),
				row.VoteSplit,
				dash(row.DominantIssues),
				formatStart(row.StartTime),
				dash(textutil.Snippet(row.TextSnippet, snippetColumnWidth)),
				dash(textutil.Snippet(row.CommentText, commentColumnWidth)),
			})
		}
		b.WriteString(renderTable([]column{
			{header: "SEGMENT"},
			{header: "SOURCE"},
			{header: "STATUS"},
			{header: "VOTES", align: alignRight},
			{header: "DOMINANT ISSUES"},
			{header: "START", align: alignRight},
			{header: "SNIPPET", maxWidth: snippetColumnWidth},
			{header: "COMMENTS", maxWidth: commentColumnWidth},
		}, rows))
		b.WriteString("\n")
	}
	return b.String()
}

func writeEvidence(b *strings.Builder, question string, evidence Evidence) {
	if evidence.Cases == 0 {
		return
	}
	fmt.Fprintf(b, "\n> %s (%d cases)\n", question, evidence.Cases)
	writeSamples(b, evidence.Samples)
}

func writeSamples(b *strings.Builder, samples []string) {
	if len(samples) == 0 {
		b.WriteString("  (no comments)\n")
		return
	}
	b.WriteString("  Sample comments:\n")
	for _, sample := range samples {
		fmt.Fprintf(b, "    - %s\n", sample)
	}
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value*100, 'f', 1, 64) + "%"
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func formatStart(start *float64) string {
	if start == nil {
		return "-"
	}
	return strconv.FormatFloat(*start, 'f', 1, 64)
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

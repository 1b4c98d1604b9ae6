package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"segcheck/internal/discrepancy"
	"segcheck/internal/heuristics"
)

// WriteDiscrepancies writes the discrepancy report in the requested format.
func WriteDiscrepancies(w io.Writer, format Format, report Discrepancies, opts Options) error {
	if report.Observations == nil {
		report.Observations = []heuristics.Observation{}
	}
	if format != FormatText {
		return writeData(w, format, report)
	}
	_, err := io.WriteString(w, renderDiscrepancies(report, newPalette(w, opts.Color)))
	return err
}

func renderDiscrepancies(report Discrepancies, p palette) string {
	var b strings.Builder
	s := report.Summary

	b.WriteString(p.sectionHeader("Segmentation discrepancy report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total validations: %d\n", s.Total)
	fmt.Fprintf(&b, "Non-acceptance rate: %s (%d/%d)\n", formatPercent(s.NonAcceptanceRate), s.Rejected, s.Total)
	if s.UnknownSegments > 0 {
		fmt.Fprintf(&b, "Validations without segment metadata: %d\n", s.UnknownSegments)
	}

	b.WriteString("\n")
	b.WriteString(p.sectionHeader("Issue frequency"))
	b.WriteString("\n")
	if len(s.IssueCounts) == 0 {
		b.WriteString(p.muted("No issues recorded."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(s.IssueCounts))
		for _, ic := range s.IssueCounts {
			rows = append(rows, []string{string(ic.Issue), strconv.Itoa(ic.Count)})
		}
		b.WriteString(renderTable([]column{{header: "ISSUE"}, {header: "COUNT", align: alignRight}}, rows))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.sectionHeader(fmt.Sprintf("Removed concepts (%d total)", s.RemovedConceptTotal)))
	b.WriteString("\n")
	writeConceptTable(&b, s.TopRemovedConcepts, p)

	for _, obs := range report.Observations {
		b.WriteString("\n")
		b.WriteString(p.sectionHeader(fmt.Sprintf("Heuristic: %s", obs.Scanner)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s: %d/%d\n", obs.Description, obs.Matched, obs.Considered)
		if len(obs.Hits) > 0 {
			rows := make([][]string, 0, len(obs.Hits))
			for _, hit := range obs.Hits {
				rows = append(rows, []string{hit.Label, strconv.Itoa(hit.Count)})
			}
			b.WriteString(renderTable([]column{{header: "MATCH", maxWidth: commentColumnWidth}, {header: "COUNT", align: alignRight}}, rows))
			b.WriteString("\n")
		}
		if len(obs.Samples) > 0 {
			writeSamples(&b, obs.Samples)
		}
	}
	return b.String()
}

func writeConceptTable(b *strings.Builder, concepts []discrepancy.ConceptCount, p palette) {
	if len(concepts) == 0 {
		b.WriteString(p.muted("No concepts removed."))
		b.WriteString("\n")
		return
	}
	rows := make([][]string, 0, len(concepts))
	for _, c := range concepts {
		rows = append(rows, []string{c.URI, strconv.Itoa(c.Count)})
	}
	b.WriteString(renderTable([]column{{header: "CONCEPT URI"}, {header: "REMOVALS", align: alignRight}}, rows))
	b.WriteString("\n")
}

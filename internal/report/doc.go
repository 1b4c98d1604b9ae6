// Package report turns consensus results, discrepancy findings, and archived
// runs into tables and documents.
//
// Rows and summaries are plain data so they can be written as text (rounded
// go-pretty tables, coloured when the output is a terminal), JSON, or YAML.
// Row fields follow the consensus report layout: segment id, source file,
// status, vote split, dominant issues joined with ", ", comments joined with
// " | ", start time, and a short text snippet.
package report

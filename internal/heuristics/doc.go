// Package heuristics runs exploratory text scans over discrepancy findings.
//
// Scans look for patterns behind reviewer edits: introductory chatter at the
// start of segments whose start time was moved, removal comments that call a
// fragment empty, capitalized names reviewers mention in comments, recurring
// keywords, and clusters of similar comments. Observations are reported next
// to the discrepancy summary and never feed back into consensus status.
package heuristics

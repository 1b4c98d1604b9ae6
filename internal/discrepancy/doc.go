// Package discrepancy explains individual validation records.
//
// Where the consensus package aggregates votes per segment, this package
// looks at every record on its own: which issue tags it carries, which
// concepts it removed, whether it counts as a rejection, and what the
// segment it refers to looked like. Summaries over the resulting findings
// feed the discrepancy report and the heuristic scans.
package discrepancy

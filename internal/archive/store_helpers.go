package archive

import (
	"database/sql"
	"fmt"
	"time"
)

const runColumns = "id, created_at, label, threshold, segments_dir, validations_dir, segment_count, record_count, skipped_count"

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run            Run
		createdRaw     string
		label          sql.NullString
		segmentsDir    sql.NullString
		validationsDir sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&createdRaw,
		&label,
		&run.Threshold,
		&segmentsDir,
		&validationsDir,
		&run.Segments,
		&run.Records,
		&run.Skipped,
	); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	run.CreatedAt = created
	run.Label = label.String
	run.SegmentsDir = segmentsDir.String
	run.ValidationsDir = validationsDir.String
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"segcheck/internal/logging"
	"segcheck/internal/validation"
)

// ErrNotDirectory reports an input path that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// LoadSegments reads every segment file in dir.
func LoadSegments(ctx context.Context, dir string, logger *slog.Logger) (*SegmentStore, Stats, error) {
	logger = logging.NewComponentLogger(logger, "segment-loader")
	store := NewSegmentStore()
	stats, err := walkJSON(ctx, dir, logger, func(path string, data []byte, stats *Stats) {
		segments, errs := validation.DecodeSegments(data, filepath.Base(path))
		stats.Entries += len(segments)
		reportDecodeErrors(logger, path, errs, stats)
		for _, segment := range segments {
			if !store.add(segment) {
				logger.Debug("duplicate segment ignored",
					logging.SegmentID(segment.ID),
					logging.SourceFile(segment.SourceFile),
				)
			}
		}
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("segments loaded",
		logging.Int("segments", store.Len()),
		logging.Int("files", stats.Files),
		logging.Int("skipped", stats.Skipped()),
	)
	return store, stats, nil
}

// LoadValidations reads every validation file in dir.
func LoadValidations(ctx context.Context, dir string, logger *slog.Logger) (*ValidationStore, Stats, error) {
	logger = logging.NewComponentLogger(logger, "validation-loader")
	store := NewValidationStore()
	stats, err := walkJSON(ctx, dir, logger, func(path string, data []byte, stats *Stats) {
		records, errs := validation.DecodeRecords(data, filepath.Base(path))
		stats.Entries += len(records)
		reportDecodeErrors(logger, path, errs, stats)
		for _, record := range records {
			if fields := record.UnrecognizedDecisions(); len(fields) > 0 {
				logger.Debug("unrecognized decision value",
					logging.SegmentID(record.SegmentID),
					logging.String(logging.FieldUserID, record.UserID),
					logging.String("fields", strings.Join(fields, ",")),
				)
			}
			store.add(record)
		}
	})
	if err != nil {
		return nil, stats, err
	}
	logger.Info("validations loaded",
		logging.Int("records", store.Len()),
		logging.Int("segments", len(store.SegmentIDs())),
		logging.Int("files", stats.Files),
		logging.Int("skipped", stats.Skipped()),
	)
	return store, stats, nil
}

type decodeFunc func(path string, data []byte, stats *Stats)

func walkJSON(ctx context.Context, dir string, logger *slog.Logger, decode decodeFunc) (Stats, error) {
	var stats Stats
	files, err := listJSON(dir)
	if err != nil {
		return stats, err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Files++
		data, err := os.ReadFile(path)
		if err != nil {
			stats.FilesSkipped++
			logging.WarnWithContext(logger, "input file skipped", "file_skipped",
				logging.SourceFile(path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check file permissions"),
				logging.String(logging.FieldImpact, "file excluded from analysis"),
			)
			continue
		}
		decode(path, data, &stats)
	}
	return stats, nil
}

func listJSON(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input directory %s: %w", dir, err)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory %s: %w", dir, ErrNotDirectory)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// reportDecodeErrors logs and counts decode failures. A document level failure
// skips the whole file; anything else skips one entry.
func reportDecodeErrors(logger *slog.Logger, path string, errs []error, stats *Stats) {
	for _, err := range errs {
		if errors.Is(err, validation.ErrInvalidDocument) {
			stats.FilesSkipped++
			logging.WarnWithContext(logger, "input file skipped", "file_skipped",
				logging.SourceFile(path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "file must hold a JSON object or array"),
				logging.String(logging.FieldImpact, "file excluded from analysis"),
			)
			continue
		}
		stats.EntriesSkipped++
		logging.WarnWithContext(logger, "skipped malformed entry", "malformed_record",
			logging.SourceFile(path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the JSON entry or remove it"),
		)
	}
}

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"segcheck/internal/config"
	"segcheck/internal/consensus"
)

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db          *sql.DB
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
	now         func() time.Time
}

// Open initializes or connects to the archive database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.ArchivePath())
}

// OpenPath opens the archive database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:          db,
		path:        dbPath,
		lock:        flock.New(filepath.Join(filepath.Dir(dbPath), "archive.lock")),
		lockTimeout: defaultLockTimeout,
		now:         time.Now,
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores run and returns it with its id and creation time filled in.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	unlock, err := s.acquire(ctx)
	if err != nil {
		return Run{}, err
	}
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin record tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, created_at, label, threshold, segments_dir, validations_dir,
            segment_count, record_count, skipped_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullableString(run.Label),
		run.Threshold,
		nullableString(run.SegmentsDir),
		nullableString(run.ValidationsDir),
		run.Segments,
		run.Records,
		run.Skipped,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	for _, sc := range run.Statuses {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_status_counts (run_id, status, count) VALUES (?, ?, ?)",
			run.ID, string(sc.Status), sc.Count,
		); err != nil {
			return Run{}, fmt.Errorf("insert status count: %w", err)
		}
	}
	for _, it := range run.Issues {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_issue_counts (run_id, issue, dominant, occurrences) VALUES (?, ?, ?, ?)",
			run.ID, string(it.Issue), it.Dominant, it.Occurrences,
		); err != nil {
			return Run{}, fmt.Errorf("insert issue count: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// acquire takes the writer lock, retrying until the lock timeout or ctx ends.
func (s *Store) acquire(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("acquire archive lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() { _ = s.lock.Unlock() }, nil
}

// List returns up to limit runs, newest first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	for i := range runs {
		if err := s.loadCounts(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Get returns the run whose id equals or starts with idOrPrefix.
func (s *Store) Get(ctx context.Context, idOrPrefix string) (Run, error) {
	key := strings.TrimSpace(idOrPrefix)
	if key == "" {
		return Run{}, ErrRunNotFound
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", key)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		run, err = s.getByPrefix(ctx, key)
	}
	if err != nil {
		return Run{}, err
	}
	if err := s.loadCounts(ctx, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) getByPrefix(ctx context.Context, prefix string) (Run, error) {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' LIMIT 2`,
		escaped+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%q: %w", prefix, ErrRunNotFound)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("%q: %w", prefix, ErrAmbiguousID)
	}
}

func (s *Store) loadCounts(ctx context.Context, run *Run) error {
	statusRows, err := s.db.QueryContext(ctx, "SELECT status, count FROM run_status_counts WHERE run_id = ?", run.ID)
	if err != nil {
		return fmt.Errorf("load status counts: %w", err)
	}
	counts := make(map[consensus.Status]int)
	for statusRows.Next() {
		var (
			status string
			count  int
		)
		if err := statusRows.Scan(&status, &count); err != nil {
			statusRows.Close()
			return fmt.Errorf("scan status count: %w", err)
		}
		counts[consensus.Status(status)] = count
	}
	statusRows.Close()
	if err := statusRows.Err(); err != nil {
		return fmt.Errorf("iterate status counts: %w", err)
	}
	run.Statuses = make([]StatusCount, 0, len(consensus.Statuses))
	for _, status := range consensus.Statuses {
		run.Statuses = append(run.Statuses, StatusCount{Status: status, Count: counts[status]})
	}

	issueRows, err := s.db.QueryContext(ctx, "SELECT issue, dominant, occurrences FROM run_issue_counts WHERE run_id = ?", run.ID)
	if err != nil {
		return fmt.Errorf("load issue counts: %w", err)
	}
	defer issueRows.Close()
	totals := make(map[consensus.Issue]IssueTotal)
	for issueRows.Next() {
		var total IssueTotal
		var issue string
		if err := issueRows.Scan(&issue, &total.Dominant, &total.Occurrences); err != nil {
			return fmt.Errorf("scan issue count: %w", err)
		}
		total.Issue = consensus.Issue(issue)
		totals[total.Issue] = total
	}
	if err := issueRows.Err(); err != nil {
		return fmt.Errorf("iterate issue counts: %w", err)
	}
	run.Issues = make([]IssueTotal, 0, len(consensus.AllIssues))
	for _, issue := range consensus.AllIssues {
		total, ok := totals[issue]
		if !ok {
			total = IssueTotal{Issue: issue}
		}
		run.Issues = append(run.Issues, total)
	}
	return nil
}

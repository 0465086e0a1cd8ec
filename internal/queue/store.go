package queue

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"singe/internal/checksum"
	"singe/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the schema changes. Old databases are
// rejected, not migrated; clear the queue after an upgrade.
const schemaVersion = 1

// Store persists burn jobs in SQLite so that separate CLI invocations share
// one queue.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the queue database under the log
// directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "queue.db")
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

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
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

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'singe queue clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// NewJob inserts a pending job and returns it with its assigned id.
func (s *Store) NewJob(ctx context.Context, name string, files []string, settings Settings) (*Job, error) {
	job := NewJob(name, files, settings)

	filesJSON, err := json.Marshal(job.Files)
	if err != nil {
		return nil, fmt.Errorf("marshal files: %w", err)
	}
	settingsJSON, err := json.Marshal(job.Settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	timestamp := job.CreatedAt.Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO burn_jobs (name, files_json, settings_json, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		job.Name, string(filesJSON), string(settingsJSON), string(job.Status), timestamp, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM burn_jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return job, err
}

// List returns all jobs in insertion (id) order.
func (s *Store) List(ctx context.Context) ([]*Job, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" FROM burn_jobs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// NextPending returns the oldest pending job, or ErrNoPendingJobs.
func (s *Store) NextPending(ctx context.Context) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+" FROM burn_jobs WHERE status = ? ORDER BY id LIMIT 1", string(StatusPending))
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPendingJobs
	}
	return job, err
}

// Update writes a job's mutable fields back to the database.
func (s *Store) Update(ctx context.Context, job *Job) error {
	filesJSON, err := json.Marshal(job.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}
	settingsJSON, err := json.Marshal(job.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	var checksumsJSON sql.NullString
	if len(job.ChecksumResults) > 0 {
		raw, err := json.Marshal(job.ChecksumResults)
		if err != nil {
			return fmt.Errorf("marshal checksums: %w", err)
		}
		checksumsJSON = sql.NullString{String: string(raw), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE burn_jobs
         SET name = ?, files_json = ?, settings_json = ?, status = ?,
             error_detail = ?, progress = ?, checksums_json = ?, updated_at = ?
         WHERE id = ?`,
		job.Name, string(filesJSON), string(settingsJSON), string(job.Status),
		job.ErrorDetail, job.Progress, checksumsJSON,
		job.UpdatedAt.Format(time.RFC3339Nano), job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, job.ID)
	}
	return nil
}

// Remove deletes a job by id.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM burn_jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// Stats returns per-status counts computed fresh from the database.
func (s *Store) Stats(ctx context.Context) (BatchSummary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM burn_jobs GROUP BY status")
	if err != nil {
		return BatchSummary{}, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	var summary BatchSummary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return BatchSummary{}, fmt.Errorf("scan stats: %w", err)
		}
		summary.Total += count
		switch Status(status) {
		case StatusPending:
			summary.Pending = count
		case StatusInProgress:
			summary.InProgress = count
		case StatusCompleted:
			summary.Completed = count
		case StatusFailed:
			summary.Failed = count
		case StatusSkipped:
			summary.Skipped = count
		}
	}
	return summary, rows.Err()
}

// Clear removes all jobs.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM burn_jobs")
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	return res.RowsAffected()
}

// ClearCompleted removes jobs in terminal success states (completed and
// skipped), keeping failures visible for diagnosis.
func (s *Store) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM burn_jobs WHERE status IN (?, ?)",
		string(StatusCompleted), string(StatusSkipped))
	if err != nil {
		return 0, fmt.Errorf("clear completed: %w", err)
	}
	return res.RowsAffected()
}

// Load materializes the whole queue as an in-memory batch preserving
// insertion order.
func (s *Store) Load(ctx context.Context) (*Batch, error) {
	jobs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewBatch(jobs...), nil
}

const selectColumns = `SELECT id, name, files_json, settings_json, status,
    error_detail, progress, checksums_json, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job           Job
		filesJSON     string
		settingsJSON  string
		status        string
		checksumsJSON sql.NullString
		createdAt     string
		updatedAt     string
	)
	err := row.Scan(&job.ID, &job.Name, &filesJSON, &settingsJSON, &status,
		&job.ErrorDetail, &job.Progress, &checksumsJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(filesJSON), &job.Files); err != nil {
		return nil, fmt.Errorf("unmarshal files: %w", err)
	}
	if err := json.Unmarshal([]byte(settingsJSON), &job.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if checksumsJSON.Valid {
		var results map[string]checksum.Record
		if err := json.Unmarshal([]byte(checksumsJSON.String), &results); err != nil {
			return nil, fmt.Errorf("unmarshal checksums: %w", err)
		}
		job.ChecksumResults = results
	}

	parsed, ok := ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("unknown job status %q (id %d)", status, job.ID)
	}
	job.Status = parsed

	if job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if job.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &job, nil
}

// Package observability persists assessment run history to SQLite.
//
// Writes never propagate errors to the caller: a failing history store
// must not abort an assessment, so failures are logged and swallowed.
// Reads (Recent, Cleanup) return errors normally.
package observability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Open opens the SQLite history database at path with production-safe
// pragmas (WAL, 10s busy timeout, NORMAL synchronous) and applies the
// schema. Parent directories are created as needed.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("observability: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("observability: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("observability: %s: %w", p, err)
		}
	}

	if err := Init(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("observability: apply schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("observability: ping: %w", err)
	}
	return db, nil
}

// OpenMemory opens an in-memory history database for testing.
// MaxOpenConns(1) keeps every query on the same connection, since each
// connection to ":memory:" is a separate database.
func OpenMemory(t testing.TB) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("observability.OpenMemory: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// Run is one row of the assessment history.
type Run struct {
	RunID           string
	URL             string
	StartedAt       time.Time
	FinishedAt      time.Time
	Industry        string
	WeightedScore   float64
	Verdict         string
	ExpertAgreement float64
	Status          string // "running", "success", "error"
	ErrorMessage    string
	DurationMs      int64
}

// RunSummary carries the outcome fields written when a run finishes.
type RunSummary struct {
	Industry        string
	WeightedScore   float64
	Verdict         string
	ExpertAgreement float64
	Err             error
	Duration        time.Duration
}

// Store records assessment runs and their stage events.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// NewStore wraps an opened history database. A nil logger means slog.Default.
func NewStore(db *sql.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{db: db, log: log}
}

func newID(prefix string) string {
	return prefix + uuid.Must(uuid.NewV7()).String()
}

// StartRun inserts a new run in the "running" state and returns its ID.
// The ID is valid even if the insert fails.
func (s *Store) StartRun(ctx context.Context, pageURL string) string {
	runID := newID("run_")
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assessment_runs (run_id, url, started_at, status)
		VALUES (?,?,?,'running')`,
		runID, pageURL, time.Now().Unix())
	if err != nil {
		s.log.Error("history: start run failed", "error", err, "url", pageURL)
	}
	return runID
}

// FinishRun updates the run row with the final outcome.
func (s *Store) FinishRun(ctx context.Context, runID string, sum RunSummary) {
	status := "success"
	errMsg := ""
	if sum.Err != nil {
		status = "error"
		errMsg = sum.Err.Error()
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE assessment_runs
		SET finished_at = ?, industry = ?, weighted_score = ?, verdict = ?,
		    expert_agreement = ?, status = ?, error_message = ?, duration_ms = ?
		WHERE run_id = ?`,
		time.Now().Unix(), sum.Industry, sum.WeightedScore, sum.Verdict,
		sum.ExpertAgreement, status, errMsg, sum.Duration.Milliseconds(), runID)
	if err != nil {
		s.log.Error("history: finish run failed", "error", err, "run_id", runID)
	}
}

// LogStage records one pipeline stage for a run. Detail is marshalled to
// JSON when non-nil; a marshal failure drops the detail, not the event.
func (s *Store) LogStage(ctx context.Context, runID, stage string, detail any, duration time.Duration, stageErr error) {
	var detailJSON string
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			detailJSON = string(b)
		}
	}
	success := 1
	if stageErr != nil {
		success = 0
		if detailJSON == "" {
			detailJSON = fmt.Sprintf(`{"error":%q}`, stageErr.Error())
		}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_events (event_id, run_id, stage, detail, duration_ms, success, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		newID("evt_"), runID, stage, detailJSON, duration.Milliseconds(), success, time.Now().Unix())
	if err != nil {
		s.log.Error("history: stage event failed", "error", err, "run_id", runID, "stage", stage)
	}
}

// Recent returns the latest runs, newest first. Limit defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, url, started_at, finished_at, industry,
		       weighted_score, verdict, expert_agreement,
		       status, error_message, duration_ms
		FROM assessment_runs
		ORDER BY started_at DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started int64
		var finished sql.NullInt64
		var industry, verdict, errMsg sql.NullString
		var score, agreement sql.NullFloat64
		var durationMs sql.NullInt64

		if err := rows.Scan(&r.RunID, &r.URL, &started, &finished, &industry,
			&score, &verdict, &agreement, &r.Status, &errMsg, &durationMs); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0)
		if finished.Valid {
			r.FinishedAt = time.Unix(finished.Int64, 0)
		}
		r.Industry = industry.String
		r.WeightedScore = score.Float64
		r.Verdict = verdict.String
		r.ExpertAgreement = agreement.Float64
		r.ErrorMessage = errMsg.String
		r.DurationMs = durationMs.Int64
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Cleanup deletes runs (and their events) older than retentionDays.
func (s *Store) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM run_events WHERE run_id IN
			(SELECT run_id FROM assessment_runs WHERE started_at < ?)`, cutoff); err != nil {
		return 0, fmt.Errorf("history: cleanup events: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM assessment_runs WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: cleanup runs: %w", err)
	}
	return res.RowsAffected()
}

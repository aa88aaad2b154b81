package observability

import "database/sql"

// Schema contains the DDL for the assessment history tables.
// Open applies it automatically; the constant is exported so callers
// managing their own schema can embed it.
const Schema = `
CREATE TABLE IF NOT EXISTS assessment_runs (
    run_id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    started_at INTEGER NOT NULL,
    finished_at INTEGER,
    industry TEXT,
    weighted_score REAL,
    verdict TEXT,
    expert_agreement REAL,
    status TEXT NOT NULL DEFAULT 'running',
    error_message TEXT,
    duration_ms INTEGER
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON assessment_runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_status ON assessment_runs(status);

CREATE TABLE IF NOT EXISTS run_events (
    event_id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL REFERENCES assessment_runs(run_id),
    stage TEXT NOT NULL,
    detail TEXT,
    duration_ms INTEGER,
    success INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);
CREATE INDEX IF NOT EXISTS idx_run_events_run ON run_events(run_id, created_at);
`

// Init applies the schema to the given database.
func Init(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}

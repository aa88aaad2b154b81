package observability_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sitejury/sitejury/observability"
)

func newStore(t *testing.T) *observability.Store {
	t.Helper()
	db := observability.OpenMemory(t)
	return observability.NewStore(db, slog.New(slog.DiscardHandler))
}

func TestRunLifecycle(t *testing.T) {
	// WHAT: a run moves running -> success and Recent reflects the
	// summary fields written at finish.
	s := newStore(t)
	ctx := context.Background()

	runID := s.StartRun(ctx, "https://acme.example")
	if runID == "" {
		t.Fatal("empty run ID")
	}

	s.LogStage(ctx, runID, "capture", map[string]int{"viewports": 3}, 1200*time.Millisecond, nil)
	s.FinishRun(ctx, runID, observability.RunSummary{
		Industry:        "default",
		WeightedScore:   72.5,
		Verdict:         "Good",
		ExpertAgreement: 88,
		Duration:        4 * time.Second,
	})

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs", len(runs))
	}
	r := runs[0]
	if r.RunID != runID || r.URL != "https://acme.example" {
		t.Errorf("run identity: %+v", r)
	}
	if r.Status != "success" || r.Verdict != "Good" || r.WeightedScore != 72.5 {
		t.Errorf("run outcome: %+v", r)
	}
	if r.DurationMs != 4000 {
		t.Errorf("duration_ms = %d, want 4000", r.DurationMs)
	}
}

func TestFailedRun(t *testing.T) {
	// WHAT: a run finished with an error is stored with status "error"
	// and the failing stage event carries success = 0.
	s := newStore(t)
	ctx := context.Background()

	runID := s.StartRun(ctx, "https://down.example")
	s.LogStage(ctx, runID, "capture", nil, 30*time.Second, errors.New("navigation timeout"))
	s.FinishRun(ctx, runID, observability.RunSummary{
		Err:      errors.New("capture: viewport desktop: navigation timeout"),
		Duration: 31 * time.Second,
	})

	runs, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].Status != "error" {
		t.Errorf("status = %q, want error", runs[0].Status)
	}
	if runs[0].ErrorMessage == "" {
		t.Error("error message not persisted")
	}
}

func TestRecentOrdering(t *testing.T) {
	// WHAT: Recent returns newest first and honours the limit.
	s := newStore(t)
	ctx := context.Background()

	var last string
	for i := 0; i < 3; i++ {
		last = s.StartRun(ctx, "https://acme.example")
	}
	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Same started_at second for all three, so run_id (UUIDv7 suffix,
	// time-sortable) breaks the tie.
	if runs[0].RunID != last {
		t.Errorf("newest run not first: %s", runs[0].RunID)
	}
}

func TestCleanup(t *testing.T) {
	// WHAT: Cleanup removes runs older than the retention window but
	// keeps current ones.
	db := observability.OpenMemory(t)
	s := observability.NewStore(db, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -30).Unix()
	if _, err := db.Exec(`INSERT INTO assessment_runs (run_id, url, started_at, status)
		VALUES ('run_old', 'https://old.example', ?, 'success')`, old); err != nil {
		t.Fatal(err)
	}
	s.StartRun(ctx, "https://fresh.example")

	deleted, err := s.Cleanup(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].URL != "https://fresh.example" {
		t.Errorf("remaining runs: %+v", runs)
	}
}

package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func run(caseID string, score float64) Run {
	return Run{
		CaseID:          caseID,
		RecordID:        "8cbd27fe-4f0c-5a70-9744-6b7d1f6e60a1",
		ConfidenceScore: score,
		DefendantCount:  2,
		CauseCount:      3,
		WarningCount:    1,
		DocumentCount:   4,
		OutputPath:      "/out/" + caseID + ".json",
		StartedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:        1500 * time.Millisecond,
	}
}

func TestRecordAndListRuns(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.RecordRun(ctx, run("case-a", 95)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.RecordRun(ctx, run("case-b", 71)); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %+v", runs)
	}
	// Newest first.
	if runs[0].CaseID != "case-b" || runs[1].CaseID != "case-a" {
		t.Errorf("order = %s, %s", runs[0].CaseID, runs[1].CaseID)
	}

	got := runs[1]
	if got.ConfidenceScore != 95 || got.DefendantCount != 2 || got.CauseCount != 3 {
		t.Errorf("run = %+v", got)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v", got.Duration)
	}
	if !got.StartedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("started at = %v", got.StartedAt)
	}
}

func TestListRuns_CaseFilter(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.RecordRun(ctx, run("case-a", 90)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordRun(ctx, run("case-b", 80)); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, "case-a", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 case-a runs, got %+v", runs)
	}
	for _, r := range runs {
		if r.CaseID != "case-a" {
			t.Errorf("filter leaked %+v", r)
		}
	}
}

func TestListRuns_Limit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.RecordRun(ctx, run("case-a", float64(50+i))); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit not applied: %+v", runs)
	}
	if runs[0].ConfidenceScore != 54 {
		t.Errorf("newest run first, got %+v", runs[0])
	}
}

func TestListRuns_Empty(t *testing.T) {
	s := openStore(t)

	runs, err := s.ListRuns(context.Background(), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %+v", runs)
	}
}

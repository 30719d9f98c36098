package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/funcscan/pkg/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRun(id string) *model.Run {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.Run{
		ID:        id,
		Name:      "funcscan-test",
		State:     model.RunStatePending,
		Command:   []string{"nextflow", "run", "main.nf", "-profile", "docker"},
		CreatedAt: now,
	}
}

func TestMigrateIdempotent(t *testing.T) {
	st := testStore(t)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestMigrateAddsDurationToExistingLedger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	// A ledger written before runs carried a duration.
	if _, err := st.db.ExecContext(ctx, `CREATE TABLE runs (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		storage_handle TEXT NOT NULL DEFAULT '',
		state          TEXT NOT NULL DEFAULT 'PENDING',
		command        TEXT NOT NULL DEFAULT '[]',
		exit_code      INTEGER,
		log_status     TEXT NOT NULL DEFAULT '',
		log_location   TEXT NOT NULL DEFAULT '',
		error          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		completed_at   TEXT
	)`); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := st.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, state, created_at) VALUES ('run_old', 'legacy', 'SUCCEEDED', ?)`,
		time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate legacy ledger: %v", err)
	}

	old, err := st.GetRun(ctx, "run_old")
	if err != nil {
		t.Fatalf("get legacy run: %v", err)
	}
	if old == nil || old.Name != "legacy" || old.DurationMS != 0 {
		t.Fatalf("legacy run = %+v, want name legacy and zero duration", old)
	}

	run := sampleRun("run_new")
	run.DurationMS = 4200
	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("create after migrate: %v", err)
	}
	got, err := st.GetRun(ctx, "run_new")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DurationMS != 4200 {
		t.Errorf("DurationMS = %d, want 4200", got.DurationMS)
	}
}

func TestMigrateFileDatabase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := NewSQLiteStore(path, logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := st.CreateRun(ctx, sampleRun("run_file")); err != nil {
		t.Fatalf("create: %v", err)
	}
	st.Close()

	st, err = NewSQLiteStore(path, logger)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	got, err := st.GetRun(ctx, "run_file")
	if err != nil || got == nil {
		t.Fatalf("get after reopen: run=%v err=%v", got, err)
	}
}

func TestCreateAndGetRun(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	run := sampleRun("run_1")
	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := st.GetRun(ctx, "run_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}
	if got.Name != run.Name {
		t.Errorf("Name = %q, want %q", got.Name, run.Name)
	}
	if got.State != model.RunStatePending {
		t.Errorf("State = %q, want PENDING", got.State)
	}
	if len(got.Command) != 5 || got.Command[0] != "nextflow" {
		t.Errorf("Command = %v", got.Command)
	}
	if got.ExitCode != nil {
		t.Errorf("ExitCode = %v, want nil", *got.ExitCode)
	}
	if got.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", got.CompletedAt)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestGetRunNotFound(t *testing.T) {
	st := testStore(t)
	got, err := st.GetRun(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUpdateRun(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	run := sampleRun("run_2")
	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("create: %v", err)
	}

	run.StorageHandle = "latch:///shared/abc"
	if err := run.Transition(model.RunStateLaunching); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if err := run.Transition(model.RunStateFailed); err != nil {
		t.Fatalf("transition: %v", err)
	}
	code := 3
	run.ExitCode = &code
	run.Error = "pipeline exited with status 3"
	run.LogStatus = model.UploadStatusUploaded
	run.LogLocation = "file:///logs/funcscan-test/nextflow.log"
	run.DurationMS = 1500

	if err := st.UpdateRun(ctx, run); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.GetRun(ctx, "run_2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != model.RunStateFailed {
		t.Errorf("State = %q, want FAILED", got.State)
	}
	if got.ExitCode == nil || *got.ExitCode != 3 {
		t.Errorf("ExitCode = %v, want 3", got.ExitCode)
	}
	if got.StorageHandle != "latch:///shared/abc" {
		t.Errorf("StorageHandle = %q", got.StorageHandle)
	}
	if got.LogStatus != model.UploadStatusUploaded {
		t.Errorf("LogStatus = %q", got.LogStatus)
	}
	if got.LogLocation != run.LogLocation {
		t.Errorf("LogLocation = %q", got.LogLocation)
	}
	if got.Error != run.Error {
		t.Errorf("Error = %q", got.Error)
	}
	if got.DurationMS != 1500 {
		t.Errorf("DurationMS = %d, want 1500", got.DurationMS)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
}

func TestUpdateRunNotFound(t *testing.T) {
	st := testStore(t)
	if err := st.UpdateRun(context.Background(), sampleRun("ghost")); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestListRuns(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		run := sampleRun(fmt.Sprintf("run_%d", i))
		run.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if i%2 == 0 {
			run.State = model.RunStateSucceeded
		}
		if err := st.CreateRun(ctx, run); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	runs, total, err := st.ListRuns(ctx, model.ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].ID != "run_4" {
		t.Errorf("newest first: got %q, want run_4", runs[0].ID)
	}

	runs, total, err = st.ListRuns(ctx, model.ListOptions{Limit: 10, State: string(model.RunStateSucceeded)})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if total != 3 || len(runs) != 3 {
		t.Errorf("filtered total=%d len=%d, want 3/3", total, len(runs))
	}

	runs, _, err = st.ListRuns(ctx, model.ListOptions{Limit: 10, Offset: 4})
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run_0" {
		t.Errorf("offset page = %v", runs)
	}
}

func TestListRunsEmpty(t *testing.T) {
	st := testStore(t)
	runs, total, err := st.ListRuns(context.Background(), model.DefaultListOptions())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 || len(runs) != 0 {
		t.Errorf("total=%d len=%d, want empty", total, len(runs))
	}
}

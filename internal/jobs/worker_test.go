package jobs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/db"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

func newJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

func claim(t *testing.T, repo repos.JobRunRepo, gdb *gorm.DB) *types.JobRun {
	t.Helper()
	job, err := repo.ClaimNextRunnable(context.Background(), gdb, 3, time.Second, time.Minute)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if job == nil {
		t.Fatal("expected a runnable job")
	}
	return job
}

func TestWorkerRecordsSuccess(t *testing.T) {
	gdb := newJobsTestDB(t)
	log := logger.NewNop()
	repo := repos.NewJobRunRepo(gdb, log)
	queue := NewQueue(gdb, log, repo)

	var gotPayload string
	registry := NewRegistry()
	registry.Register("echo", HandlerFunc(func(ctx context.Context, payload datatypes.JSON) error {
		gotPayload = string(payload)
		return nil
	}))
	worker := NewWorker(gdb, log, repo, registry, DefaultWorkerPolicy())

	submitted, err := queue.Submit(context.Background(), "echo", map[string]string{"k": "v"}, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	worker.RunJob(context.Background(), claim(t, repo, gdb))

	if gotPayload != `{"k":"v"}` {
		t.Fatalf("payload = %q", gotPayload)
	}
	done, err := repo.GetByID(context.Background(), nil, submitted.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if done.Status != types.JobStatusSucceeded {
		t.Fatalf("status = %q, want succeeded", done.Status)
	}
	if done.FinishedAt == nil {
		t.Fatal("finished_at not set")
	}
}

func TestWorkerRecordsFailure(t *testing.T) {
	gdb := newJobsTestDB(t)
	log := logger.NewNop()
	repo := repos.NewJobRunRepo(gdb, log)
	queue := NewQueue(gdb, log, repo)

	registry := NewRegistry()
	registry.Register("boom", HandlerFunc(func(ctx context.Context, payload datatypes.JSON) error {
		return errors.New("archive is unreadable")
	}))
	worker := NewWorker(gdb, log, repo, registry, DefaultWorkerPolicy())

	submitted, err := queue.Submit(context.Background(), "boom", nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	worker.RunJob(context.Background(), claim(t, repo, gdb))

	done, err := repo.GetByID(context.Background(), nil, submitted.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if done.Status != types.JobStatusFailed {
		t.Fatalf("status = %q, want failed", done.Status)
	}
	if done.LastError != "archive is unreadable" {
		t.Fatalf("last_error = %q", done.LastError)
	}
}

func TestWorkerRecoversFromPanic(t *testing.T) {
	gdb := newJobsTestDB(t)
	log := logger.NewNop()
	repo := repos.NewJobRunRepo(gdb, log)
	queue := NewQueue(gdb, log, repo)

	registry := NewRegistry()
	registry.Register("panic", HandlerFunc(func(ctx context.Context, payload datatypes.JSON) error {
		panic("handler bug")
	}))
	worker := NewWorker(gdb, log, repo, registry, DefaultWorkerPolicy())

	submitted, err := queue.Submit(context.Background(), "panic", nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	worker.RunJob(context.Background(), claim(t, repo, gdb))

	done, err := repo.GetByID(context.Background(), nil, submitted.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if done.Status != types.JobStatusFailed {
		t.Fatalf("status = %q, want failed", done.Status)
	}
}

func TestUnknownJobTypeFails(t *testing.T) {
	gdb := newJobsTestDB(t)
	log := logger.NewNop()
	repo := repos.NewJobRunRepo(gdb, log)
	queue := NewQueue(gdb, log, repo)
	worker := NewWorker(gdb, log, repo, NewRegistry(), DefaultWorkerPolicy())

	submitted, err := queue.Submit(context.Background(), "nobody-home", nil, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	worker.RunJob(context.Background(), claim(t, repo, gdb))

	done, err := repo.GetByID(context.Background(), nil, submitted.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if done.Status != types.JobStatusFailed {
		t.Fatalf("status = %q, want failed", done.Status)
	}
}

package repos

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/db"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

func newJobRunTestDB(t *testing.T) *gorm.DB {
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

func TestClaimQueuedSetsLock(t *testing.T) {
	gdb := newJobRunTestDB(t)
	repo := NewJobRunRepo(gdb, logger.NewNop())
	ctx := context.Background()

	row := &types.JobRun{JobType: "echo", Status: types.JobStatusQueued}
	if _, err := repo.Create(ctx, nil, row); err != nil {
		t.Fatalf("create: %v", err)
	}

	claimed, err := repo.ClaimNextRunnable(ctx, nil, 3, time.Second, time.Minute)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed == nil {
		t.Fatal("queued job not claimed")
	}
	if claimed.Status != types.JobStatusRunning {
		t.Fatalf("status = %q, want running", claimed.Status)
	}
	if claimed.LockedAt == nil {
		t.Fatal("locked_at not set by claim")
	}
	if claimed.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", claimed.Attempts)
	}
}

func TestStaleRunningClaimHasSingleWinner(t *testing.T) {
	gdb := newJobRunTestDB(t)
	repo := NewJobRunRepo(gdb, logger.NewNop()).(*jobRunRepo)
	ctx := context.Background()

	stale := time.Now().Add(-10 * time.Minute)
	row := &types.JobRun{JobType: "echo", Status: types.JobStatusRunning, Attempts: 1, LockedAt: &stale}
	if _, err := repo.Create(ctx, nil, row); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Both workers read the same stale candidate before either updates it.
	snapshot, err := repo.GetByID(ctx, nil, row.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot == nil || snapshot.LockedAt == nil {
		t.Fatal("expected a stale running snapshot")
	}

	claimed, err := repo.ClaimNextRunnable(ctx, nil, 3, time.Second, time.Minute)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if claimed == nil {
		t.Fatal("stale running job should be claimable")
	}

	won, err := repo.claimRow(ctx, gdb, snapshot, time.Now())
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if won {
		t.Fatal("stale snapshot claimed a job another worker already locked")
	}

	reloaded, err := repo.GetByID(ctx, nil, row.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2 (one original run plus one re-claim)", reloaded.Attempts)
	}
}

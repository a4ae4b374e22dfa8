package jobs

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type WorkerPolicy struct {
	PollInterval time.Duration
	MaxAttempts  int
	RetryDelay   time.Duration
	StaleRunning time.Duration
}

func DefaultWorkerPolicy() WorkerPolicy {
	return WorkerPolicy{
		PollInterval: time.Second,
		MaxAttempts:  3,
		RetryDelay:   30 * time.Second,
		StaleRunning: 5 * time.Minute,
	}
}

// Worker polls for runnable job rows and dispatches them to registered
// handlers. A panicking handler marks the run failed instead of taking the
// process down.
type Worker struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.JobRunRepo
	registry *Registry
	policy   WorkerPolicy
}

func NewWorker(db *gorm.DB, baseLog *logger.Logger, repo repos.JobRunRepo, registry *Registry, policy WorkerPolicy) *Worker {
	if policy.PollInterval <= 0 {
		policy.PollInterval = time.Second
	}
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 3
	}
	if policy.RetryDelay <= 0 {
		policy.RetryDelay = 30 * time.Second
	}
	if policy.StaleRunning <= 0 {
		policy.StaleRunning = 5 * time.Minute
	}
	return &Worker{
		db:       db,
		log:      baseLog.With("component", "JobWorker"),
		repo:     repo,
		registry: registry,
		policy:   policy,
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.policy.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.tick(ctx)
			}
		}
	}()
}

func (w *Worker) tick(ctx context.Context) {
	job, err := w.repo.ClaimNextRunnable(ctx, w.db, w.policy.MaxAttempts, w.policy.RetryDelay, w.policy.StaleRunning)
	if err != nil {
		w.log.Warn("ClaimNextRunnable failed", "error", err)
		return
	}
	if job == nil {
		return
	}
	w.RunJob(ctx, job)
}

// RunJob dispatches a claimed job and records the outcome on its row.
func (w *Worker) RunJob(ctx context.Context, job *types.JobRun) {
	h, ok := w.registry.Get(job.JobType)
	if !ok {
		w.log.Warn("No handler registered for job type", "job_type", job.JobType, "job_id", job.ID)
		w.finish(ctx, job, fmt.Errorf("no handler registered for job_type=%s", job.JobType))
		return
	}

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				w.log.Error("Job handler panic", "job_id", job.ID, "job_type", job.JobType, "panic", r)
				runErr = fmt.Errorf("panic: %v", r)
			}
		}()
		runErr = h.Run(ctx, job.Payload)
	}()

	w.finish(ctx, job, runErr)
}

func (w *Worker) finish(ctx context.Context, job *types.JobRun, runErr error) {
	now := time.Now()
	updates := map[string]any{
		"finished_at": now,
	}
	if runErr != nil {
		updates["status"] = types.JobStatusFailed
		updates["last_error"] = runErr.Error()
	} else {
		updates["status"] = types.JobStatusSucceeded
		updates["last_error"] = ""
	}
	if err := w.repo.UpdateFields(ctx, w.db, job.ID, updates); err != nil {
		w.log.Error("Failed to record job outcome", "job_id", job.ID, "error", err)
	}
}

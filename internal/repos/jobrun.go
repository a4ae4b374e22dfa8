package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type JobRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.JobRun) (*types.JobRun, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.JobRun, error)
	// ClaimNextRunnable picks the oldest runnable job and flips it to running.
	// Runnable means queued, failed with attempts left after the retry delay,
	// or running with a lock older than staleRunning (a crashed worker).
	// Returns nil when nothing is runnable.
	ClaimNextRunnable(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay, staleRunning time.Duration) (*types.JobRun, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
}

type jobRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRunRepo(db *gorm.DB, baseLog *logger.Logger) JobRunRepo {
	return &jobRunRepo{db: db, log: baseLog.With("repo", "JobRunRepo")}
}

func (r *jobRunRepo) Create(ctx context.Context, tx *gorm.DB, row *types.JobRun) (*types.JobRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *jobRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.JobRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.JobRun
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *jobRunRepo) ClaimNextRunnable(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay, staleRunning time.Duration) (*types.JobRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()

	var candidate types.JobRun
	err := transaction.WithContext(ctx).
		Where("status = ?", types.JobStatusQueued).
		Or("status = ? AND attempts < ? AND updated_at < ?", types.JobStatusFailed, maxAttempts, now.Add(-retryDelay)).
		Or("status = ? AND locked_at < ?", types.JobStatusRunning, now.Add(-staleRunning)).
		Order("created_at").
		First(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	won, err := r.claimRow(ctx, transaction, &candidate, now)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, nil
	}
	return r.GetByID(ctx, transaction, candidate.ID)
}

// claimRow is the optimistic claim: status and lock timestamp must both be
// unchanged since the candidate was read, so only one worker wins. Guarding
// on status alone is not enough for a stale-running row, which stays
// "running" after a competing claim.
func (r *jobRunRepo) claimRow(ctx context.Context, transaction *gorm.DB, candidate *types.JobRun, now time.Time) (bool, error) {
	claim := transaction.WithContext(ctx).
		Model(&types.JobRun{}).
		Where("id = ? AND status = ?", candidate.ID, candidate.Status)
	if candidate.LockedAt == nil {
		claim = claim.Where("locked_at IS NULL")
	} else {
		claim = claim.Where("locked_at = ?", *candidate.LockedAt)
	}
	res := claim.Updates(map[string]any{
		"status":    types.JobStatusRunning,
		"locked_at": now,
		"attempts":  gorm.Expr("attempts + 1"),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *jobRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.JobRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}

package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

// Queue is the submit side of the task abstraction: callers hand off a job and
// get an acknowledgement (the run id), never a result channel. Status and
// errors land on the job row, so a failed run stays observable instead of
// vanishing with a detached thread.
type Queue struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.JobRunRepo
}

func NewQueue(db *gorm.DB, baseLog *logger.Logger, repo repos.JobRunRepo) *Queue {
	return &Queue{db: db, log: baseLog.With("component", "JobQueue"), repo: repo}
}

func (q *Queue) Submit(ctx context.Context, jobType string, payload any, submittedBy *uuid.UUID) (*types.JobRun, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}
	run := &types.JobRun{
		JobType:     jobType,
		Status:      types.JobStatusQueued,
		Payload:     datatypes.JSON(raw),
		SubmittedBy: submittedBy,
	}
	created, err := q.repo.Create(ctx, nil, run)
	if err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", jobType, err)
	}
	q.log.Info("Job submitted", "job_type", jobType, "job_id", created.ID)
	return created, nil
}

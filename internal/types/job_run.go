package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
)

// JobRun is one background job row. Submitters get no result channel back;
// status and error live on the row so failures stay observable.
type JobRun struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	JobType     string         `gorm:"not null;index;column:job_type" json:"job_type"`
	Status      string         `gorm:"not null;index;column:status" json:"status"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	Attempts    int            `gorm:"not null;default:0;column:attempts" json:"attempts"`
	LastError   string         `gorm:"column:last_error" json:"last_error"`
	SubmittedBy *uuid.UUID     `gorm:"type:uuid;column:submitted_by" json:"submitted_by,omitempty"`
	LockedAt    *time.Time     `gorm:"index;column:locked_at" json:"locked_at,omitempty"`
	FinishedAt  *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (JobRun) TableName() string { return "job_run" }

func (j *JobRun) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

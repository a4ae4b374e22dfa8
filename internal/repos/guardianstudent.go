package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type GuardianStudentRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.GuardianStudent) error
	GetByPair(ctx context.Context, tx *gorm.DB, guardianID, studentID uuid.UUID) (*types.GuardianStudent, error)
	ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.GuardianStudent, error)
	ListByGuardianID(ctx context.Context, tx *gorm.DB, guardianID uuid.UUID) ([]*types.GuardianStudent, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type guardianStudentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGuardianStudentRepo(db *gorm.DB, baseLog *logger.Logger) GuardianStudentRepo {
	return &guardianStudentRepo{db: db, log: baseLog.With("repo", "GuardianStudentRepo")}
}

func (r *guardianStudentRepo) Save(ctx context.Context, tx *gorm.DB, row *types.GuardianStudent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("Guardian", "Student").Save(row).Error
}

func (r *guardianStudentRepo) GetByPair(ctx context.Context, tx *gorm.DB, guardianID, studentID uuid.UUID) (*types.GuardianStudent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.GuardianStudent
	err := transaction.WithContext(ctx).
		Where("guardian_id = ? AND student_id = ?", guardianID, studentID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *guardianStudentRepo) ListByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.GuardianStudent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.GuardianStudent
	if err := transaction.WithContext(ctx).
		Preload("Guardian").
		Preload("Guardian.User").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *guardianStudentRepo) ListByGuardianID(ctx context.Context, tx *gorm.DB, guardianID uuid.UUID) ([]*types.GuardianStudent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.GuardianStudent
	if err := transaction.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Where("guardian_id = ?", guardianID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *guardianStudentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.GuardianStudent{}).Error
}

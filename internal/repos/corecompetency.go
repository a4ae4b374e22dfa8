package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type CoreCompetencyRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.CoreCompetency) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CoreCompetency, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CoreCompetency, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type coreCompetencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoreCompetencyRepo(db *gorm.DB, baseLog *logger.Logger) CoreCompetencyRepo {
	return &coreCompetencyRepo{db: db, log: baseLog.With("repo", "CoreCompetencyRepo")}
}

func (r *coreCompetencyRepo) Save(ctx context.Context, tx *gorm.DB, row *types.CoreCompetency) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *coreCompetencyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CoreCompetency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.CoreCompetency
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *coreCompetencyRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CoreCompetency, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.CoreCompetency
	if err := transaction.WithContext(ctx).Order("title").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *coreCompetencyRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.CoreCompetency{}).Error
}

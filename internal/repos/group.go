package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type GroupRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.Group) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Group, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Group, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	return &groupRepo{db: db, log: baseLog.With("repo", "GroupRepo")}
}

func (r *groupRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Group) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Omit("Badge", "CoreCompetency1", "CoreCompetency2", "CoreCompetency3").
		Save(row).Error
}

func (r *groupRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Group
	err := transaction.WithContext(ctx).
		Preload("Badge").
		Preload("CoreCompetency1").
		Preload("CoreCompetency2").
		Preload("CoreCompetency3").
		Where("id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *groupRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Group, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Group
	if err := transaction.WithContext(ctx).
		Preload("Badge").
		Preload("CoreCompetency1").
		Preload("CoreCompetency2").
		Preload("CoreCompetency3").
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *groupRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Group{}).Error
}

package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type PathwayRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.Pathway) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Pathway, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Pathway, error)
	ReplaceCoreCompetencies(ctx context.Context, tx *gorm.DB, row *types.Pathway, competencies []types.CoreCompetency) error
	ReplaceGroups(ctx context.Context, tx *gorm.DB, row *types.Pathway, groups []types.Group) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type pathwayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPathwayRepo(db *gorm.DB, baseLog *logger.Logger) PathwayRepo {
	return &pathwayRepo{db: db, log: baseLog.With("repo", "PathwayRepo")}
}

func (r *pathwayRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Pathway) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("CoreCompetencies", "Groups").Save(row).Error
}

func (r *pathwayRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Pathway, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Pathway
	err := transaction.WithContext(ctx).
		Preload("CoreCompetencies").
		Preload("Groups").
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

func (r *pathwayRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Pathway, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Pathway
	if err := transaction.WithContext(ctx).
		Preload("CoreCompetencies").
		Preload("Groups").
		Order("title").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pathwayRepo) ReplaceCoreCompetencies(ctx context.Context, tx *gorm.DB, row *types.Pathway, competencies []types.CoreCompetency) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Model(row).Association("CoreCompetencies").Replace(competencies)
}

func (r *pathwayRepo) ReplaceGroups(ctx context.Context, tx *gorm.DB, row *types.Pathway, groups []types.Group) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Model(row).Association("Groups").Replace(groups)
}

func (r *pathwayRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Pathway{}).Error
}

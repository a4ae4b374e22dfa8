package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type BadgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Badge) (*types.Badge, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.Badge) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Badge, error)
	TitleExists(ctx context.Context, tx *gorm.DB, title string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Badge, error)
	ReplaceCoreCompetencies(ctx context.Context, tx *gorm.DB, row *types.Badge, competencies []types.CoreCompetency) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Badge) (*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Omit("CoreCompetencies").Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *badgeRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Badge) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("CoreCompetencies").Save(row).Error
}

func (r *badgeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Badge
	err := transaction.WithContext(ctx).
		Preload("CoreCompetencies").
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

func (r *badgeRepo) TitleExists(ctx context.Context, tx *gorm.DB, title string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Badge{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *badgeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Badge
	if err := transaction.WithContext(ctx).
		Preload("CoreCompetencies").
		Order("title").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *badgeRepo) ReplaceCoreCompetencies(ctx context.Context, tx *gorm.DB, row *types.Badge, competencies []types.CoreCompetency) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Model(row).Association("CoreCompetencies").Replace(competencies)
}

func (r *badgeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Badge{}).Error
}

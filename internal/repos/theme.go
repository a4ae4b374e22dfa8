package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type ThemeRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.Theme) error
	GetByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.Theme, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type themeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewThemeRepo(db *gorm.DB, baseLog *logger.Logger) ThemeRepo {
	return &themeRepo{db: db, log: baseLog.With("repo", "ThemeRepo")}
}

func (r *themeRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Theme) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("Group").Save(row).Error
}

func (r *themeRepo) GetByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.Theme, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Theme
	err := transaction.WithContext(ctx).Where("group_id = ?", groupID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *themeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Theme{}).Error
}

package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type SlideshowProgressRepo interface {
	GetByUserAndSlug(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slug string) (*types.SlideshowProgress, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.SlideshowProgress) (*types.SlideshowProgress, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.SlideshowProgress) error
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SlideshowProgress, error)
}

type slideshowProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSlideshowProgressRepo(db *gorm.DB, baseLog *logger.Logger) SlideshowProgressRepo {
	return &slideshowProgressRepo{db: db, log: baseLog.With("repo", "SlideshowProgressRepo")}
}

func (r *slideshowProgressRepo) GetByUserAndSlug(ctx context.Context, tx *gorm.DB, userID uuid.UUID, slug string) (*types.SlideshowProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.SlideshowProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND slideshow_slug = ?", userID, slug).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *slideshowProgressRepo) Create(ctx context.Context, tx *gorm.DB, row *types.SlideshowProgress) (*types.SlideshowProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Omit("User").Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *slideshowProgressRepo) Save(ctx context.Context, tx *gorm.DB, row *types.SlideshowProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("User").Save(row).Error
}

func (r *slideshowProgressRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SlideshowProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.SlideshowProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

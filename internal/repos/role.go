package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type RoleRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.Role) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Role, error)
	GetByTitleFold(ctx context.Context, tx *gorm.DB, title string) (*types.Role, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Role, error)
	ListFacilitatorIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	return &roleRepo{db: db, log: baseLog.With("repo", "RoleRepo")}
}

func (r *roleRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Role) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}

func (r *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Role
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByTitleFold matches the title case-insensitively. Used by the CSV
// importer where role names arrive in arbitrary casing.
func (r *roleRepo) GetByTitleFold(ctx context.Context, tx *gorm.DB, title string) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Role
	err := transaction.WithContext(ctx).Where("LOWER(title) = LOWER(?)", title).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *roleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Role
	if err := transaction.WithContext(ctx).Order("title").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *roleRepo) ListFacilitatorIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Role{}).
		Where("is_facilitator = ?", true).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *roleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Role{}).Error
}

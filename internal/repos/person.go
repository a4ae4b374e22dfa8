package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type PersonRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.Person) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Person, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Person, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error)
	ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Person, error)
	ListByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) ([]*types.Person, error)
	UpdateCachedStr(ctx context.Context, tx *gorm.DB, id uuid.UUID, cachedStr string) error
	ClearRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	return &personRepo{db: db, log: baseLog.With("repo", "PersonRepo")}
}

func (r *personRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Person) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("User", "Role").Save(row).Error
}

func (r *personRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Person
	err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Role").
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

func (r *personRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Person
	err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Role").
		Where("user_id = ?", userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *personRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Person
	if err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Role").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *personRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Person
	if len(userIDs) == 0 {
		return rows, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Role").
		Where("user_id IN ?", userIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *personRepo) ListByRoleID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Person
	if err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Role").
		Where("role_id = ?", roleID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateCachedStr writes only the cached display column so the save path is
// not re-entered.
func (r *personRepo) UpdateCachedStr(ctx context.Context, tx *gorm.DB, id uuid.UUID, cachedStr string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("id = ?", id).
		Update("cached_str", cachedStr).Error
}

// ClearRole applies the set-null policy for role deletion explicitly so it
// behaves the same on every driver.
func (r *personRepo) ClearRole(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Person{}).
		Where("role_id = ?", roleID).
		Update("role_id", nil).Error
}

func (r *personRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Person{}).Error
}

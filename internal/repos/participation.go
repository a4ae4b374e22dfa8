package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type ParticipationRepo interface {
	Save(ctx context.Context, tx *gorm.DB, row *types.Participation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Participation, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Participation, error)
	ListByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.Participation, error)
	ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Participation, error)
	ListGroupIDsForPerson(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]uuid.UUID, error)
	CountByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByGroupAndPerson(ctx context.Context, tx *gorm.DB, groupID, personID uuid.UUID) error
}

type participationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParticipationRepo(db *gorm.DB, baseLog *logger.Logger) ParticipationRepo {
	return &participationRepo{db: db, log: baseLog.With("repo", "ParticipationRepo")}
}

func (r *participationRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Participation) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Omit("Person", "Group", "Badge").Save(row).Error
}

func (r *participationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Participation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Participation
	err := transaction.WithContext(ctx).
		Preload("Person").
		Preload("Person.User").
		Preload("Person.Role").
		Preload("Group").
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

func (r *participationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Participation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Participation
	if err := transaction.WithContext(ctx).
		Preload("Person").
		Preload("Person.User").
		Preload("Person.Role").
		Preload("Group").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *participationRepo) ListByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.Participation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Participation
	if err := transaction.WithContext(ctx).
		Preload("Person").
		Preload("Person.User").
		Preload("Person.Role").
		Preload("Group").
		Where("group_id = ?", groupID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *participationRepo) ListByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]*types.Participation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.Participation
	if err := transaction.WithContext(ctx).
		Preload("Person").
		Preload("Person.User").
		Preload("Person.Role").
		Preload("Group").
		Where("person_id = ?", personID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *participationRepo) ListGroupIDsForPerson(ctx context.Context, tx *gorm.DB, personID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Participation{}).
		Distinct("group_id").
		Where("person_id = ?", personID).
		Pluck("group_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *participationRepo) CountByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Participation{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *participationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Participation{}).Error
}

func (r *participationRepo) DeleteByGroupAndPerson(ctx context.Context, tx *gorm.DB, groupID, personID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("group_id = ? AND person_id = ?", groupID, personID).
		Delete(&types.Participation{}).Error
}

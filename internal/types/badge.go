package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Badge struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string           `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description      string           `gorm:"column:description" json:"description"`
	ImagePath        string           `gorm:"column:image_path" json:"image_path"`
	IsActive         bool             `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CoreCompetencies []CoreCompetency `gorm:"many2many:badge_core_competency" json:"core_competencies,omitempty"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updated_at"`
}

func (Badge) TableName() string { return "badge" }

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pathway struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string           `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description      string           `gorm:"column:description" json:"description"`
	IsActive         bool             `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CoreCompetencies []CoreCompetency `gorm:"many2many:pathway_core_competency" json:"core_competencies,omitempty"`
	Groups           []Group          `gorm:"many2many:pathway_group" json:"groups,omitempty"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updated_at"`
}

func (Pathway) TableName() string { return "pathway" }

func (p *Pathway) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

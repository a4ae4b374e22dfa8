package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a named activity group. Membership exists only through
// Participation rows.
type Group struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"not null;column:name" json:"name"`
	Description      string          `gorm:"column:description" json:"description"`
	BadgeID          *uuid.UUID      `gorm:"type:uuid;column:badge_id" json:"badge_id,omitempty"`
	Badge            *Badge          `gorm:"constraint:OnDelete:SET NULL;foreignKey:BadgeID;references:ID" json:"badge,omitempty"`
	CoreCompetency1ID *uuid.UUID     `gorm:"type:uuid;column:core_competency_1_id" json:"core_competency_1_id,omitempty"`
	CoreCompetency1  *CoreCompetency `gorm:"constraint:OnDelete:SET NULL;foreignKey:CoreCompetency1ID;references:ID" json:"core_competency_1,omitempty"`
	CoreCompetency2ID *uuid.UUID     `gorm:"type:uuid;column:core_competency_2_id" json:"core_competency_2_id,omitempty"`
	CoreCompetency2  *CoreCompetency `gorm:"constraint:OnDelete:SET NULL;foreignKey:CoreCompetency2ID;references:ID" json:"core_competency_2,omitempty"`
	CoreCompetency3ID *uuid.UUID     `gorm:"type:uuid;column:core_competency_3_id" json:"core_competency_3_id,omitempty"`
	CoreCompetency3  *CoreCompetency `gorm:"constraint:OnDelete:SET NULL;foreignKey:CoreCompetency3ID;references:ID" json:"core_competency_3,omitempty"`
	IsPublic         bool            `gorm:"not null;default:true;column:is_public" json:"is_public"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

func (Group) TableName() string { return "activity_group" }

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

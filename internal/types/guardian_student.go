package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuardianStudent is a directed guardian -> student relationship, unique per
// pair.
type GuardianStudent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GuardianID   uuid.UUID `gorm:"type:uuid;not null;index:idx_guardian_student,unique;column:guardian_id" json:"guardian_id"`
	Guardian     *Person   `gorm:"constraint:OnDelete:CASCADE;foreignKey:GuardianID;references:ID" json:"guardian,omitempty"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index:idx_guardian_student,unique;column:student_id" json:"student_id"`
	Student      *Person   `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Relationship string    `gorm:"not null;column:relationship" json:"relationship"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	Notes        string    `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (GuardianStudent) TableName() string { return "guardian_student" }

func (g *GuardianStudent) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

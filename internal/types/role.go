package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FacilitatorRoleTitle is the single place the "facilitator" magic string
// lives. Everything downstream reads Role.IsFacilitator instead of comparing
// titles.
const FacilitatorRoleTitle = "facilitator"

type Role struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"not null;column:title" json:"title"`
	Description   string    `gorm:"column:description" json:"description"`
	IsActive      bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsFacilitator bool      `gorm:"not null;default:false;column:is_facilitator" json:"is_facilitator"`
	IsPublic      bool      `gorm:"not null;default:true;column:is_public" json:"is_public"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Role) TableName() string { return "role" }

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave recomputes the facilitator capability flag from the title so a
// rename to or from "facilitator" (any casing) changes behavior everywhere.
func (r *Role) BeforeSave(tx *gorm.DB) error {
	r.IsFacilitator = strings.EqualFold(strings.TrimSpace(r.Title), FacilitatorRoleTitle)
	return nil
}

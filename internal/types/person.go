package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Person struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	User                   *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RoleID                 *uuid.UUID `gorm:"type:uuid;column:role_id" json:"role_id,omitempty"`
	Role                   *Role      `gorm:"constraint:OnDelete:SET NULL;foreignKey:RoleID;references:ID" json:"role,omitempty"`
	ProfilePicturePath     string     `gorm:"column:profile_picture_path" json:"profile_picture_path"`
	GraduatingYear         *int       `gorm:"column:graduating_year" json:"graduating_year,omitempty"`
	IsPublic               bool       `gorm:"not null;default:true;column:is_public" json:"is_public"`
	ShowActivitiesPublicly bool       `gorm:"not null;default:false;column:show_activities_publicly" json:"show_activities_publicly"`
	ShowGuardiansPublicly  bool       `gorm:"not null;default:false;column:show_guardians_publicly" json:"show_guardians_publicly"`
	CachedStr              string     `gorm:"column:cached_str" json:"cached_str"`
	CreatedAt              time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"not null" json:"updated_at"`
}

func (Person) TableName() string { return "person" }

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DisplayString renders the canonical "Name (Role[, Graduating: YYYY])" form.
// The result is persisted in CachedStr by the display service; staleness is
// tolerated between recompute triggers.
func (p *Person) DisplayString() string {
	name := ""
	if p.User != nil {
		name = p.User.FullName()
	}
	roleStr := "No Role"
	if p.Role != nil {
		roleStr = p.Role.Title
	}
	if p.GraduatingYear != nil {
		return fmt.Sprintf("%s (%s, Graduating: %d)", name, roleStr, *p.GraduatingYear)
	}
	return fmt.Sprintf("%s (%s)", name, roleStr)
}

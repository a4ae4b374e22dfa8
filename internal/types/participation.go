package types

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Participation joins a Person to a Group. Years is an unordered set stored as
// a JSON list; input may arrive unsorted or with duplicates.
type Participation struct {
	ID                 uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	PersonID           uuid.UUID                `gorm:"type:uuid;not null;index;column:person_id" json:"person_id"`
	Person             *Person                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonID;references:ID" json:"person,omitempty"`
	GroupID            uuid.UUID                `gorm:"type:uuid;not null;index;column:group_id" json:"group_id"`
	Group              *Group                   `gorm:"constraint:OnDelete:CASCADE;foreignKey:GroupID;references:ID" json:"group,omitempty"`
	Hours              *int                     `gorm:"column:hours" json:"hours,omitempty"`
	SpecialRecognition string                   `gorm:"column:special_recognition" json:"special_recognition"`
	Years              datatypes.JSONSlice[int] `gorm:"column:years" json:"years"`
	Elementary         bool                     `gorm:"not null;default:false;column:elementary" json:"elementary"`
	Senior             bool                     `gorm:"not null;default:false;column:senior" json:"senior"`
	IsPublic           bool                     `gorm:"not null;default:false;column:is_public" json:"is_public"`
	BadgeID            *uuid.UUID               `gorm:"type:uuid;column:badge_id" json:"badge_id,omitempty"`
	Badge              *Badge                   `gorm:"constraint:OnDelete:SET NULL;foreignKey:BadgeID;references:ID" json:"badge,omitempty"`
	CreatedAt          time.Time                `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time                `gorm:"not null" json:"updated_at"`
}

func (Participation) TableName() string { return "participation" }

func (p *Participation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FormatSchoolYears renders the years set ascending as "YYYY-YYYY+1" ranges,
// e.g. [2022, 2020] -> "2020-2021, 2022-2023". The stored slice is left
// untouched.
func (p *Participation) FormatSchoolYears() string {
	years := make([]int, len(p.Years))
	copy(years, p.Years)
	sort.Ints(years)

	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d-%d", y, y+1))
	}
	return strings.Join(parts, ", ")
}

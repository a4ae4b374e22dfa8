package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Theme struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID             uuid.UUID      `gorm:"type:uuid;not null;index;column:group_id" json:"group_id"`
	Group               *Group         `gorm:"constraint:OnDelete:CASCADE;foreignKey:GroupID;references:ID" json:"group,omitempty"`
	ColorPalette        datatypes.JSON `gorm:"column:color_palette" json:"color_palette"`
	FontChoices         string         `gorm:"column:font_choices" json:"font_choices"`
	LogoPath            string         `gorm:"column:logo_path" json:"logo_path"`
	BackgroundImagePath string         `gorm:"column:background_image_path" json:"background_image_path"`
	CreatedAt           time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
}

func (Theme) TableName() string { return "theme" }

func (t *Theme) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

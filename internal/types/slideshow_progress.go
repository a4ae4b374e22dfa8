package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlideshowProgress is unique per (user, slideshow slug). MaxPercentage is a
// monotone watermark: it only ever goes up.
type SlideshowProgress struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_slideshow,unique;column:user_id" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SlideshowSlug string    `gorm:"not null;index:idx_user_slideshow,unique;column:slideshow_slug" json:"slideshow_slug"`
	CurrentH      int       `gorm:"not null;default:0;column:current_h" json:"current_h"`
	CurrentV      int       `gorm:"not null;default:0;column:current_v" json:"current_v"`
	MaxPercentage int       `gorm:"not null;default:0;column:max_percentage" json:"max_percentage"`
	Completed     bool      `gorm:"not null;default:false;column:completed" json:"completed"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (SlideshowProgress) TableName() string { return "slideshow_progress" }

func (s *SlideshowProgress) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

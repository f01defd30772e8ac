package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Time        string    `gorm:"size:5;uniqueIndex;not null" json:"time"` // HH:MM
	IsAvailable bool      `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

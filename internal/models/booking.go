package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking rows are never updated in place: a change is a delete plus a new insert.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_booking_slot;index" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null;uniqueIndex:idx_booking_slot" json:"time"`        // HH:MM

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	ServiceID *uuid.UUID `gorm:"type:uuid" json:"service_id"`
	Service   *Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

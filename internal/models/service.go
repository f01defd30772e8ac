package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name            string          `gorm:"size:100;not null" json:"name"`
	Category        string          `gorm:"size:50;index" json:"category"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	Active          bool            `gorm:"default:true" json:"active"`
	ImageURL        string          `gorm:"size:500" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

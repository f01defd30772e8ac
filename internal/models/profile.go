package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its primary key with User.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"size:100" json:"full_name"`
	Phone    string    `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

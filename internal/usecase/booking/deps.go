package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/models"
)

// Catalog is the read side of services and time slots used while booking.
type Catalog interface {
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ListTimeSlots(ctx context.Context, availableOnly bool) ([]models.TimeSlot, error)
}

type Notifier interface {
	Notify(text string)
}

// Profiles is used to pre-fill contact data.
type Profiles interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/models"
)

type ServiceRepository interface {
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error

	// UpdateService and DeleteService report the rows affected.
	UpdateService(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	DeleteService(ctx context.Context, id uuid.UUID) (int64, error)
}

type TimeSlotRepository interface {
	ListTimeSlots(ctx context.Context, availableOnly bool) ([]models.TimeSlot, error)
	GetTimeSlot(ctx context.Context, id uuid.UUID) (*models.TimeSlot, error)
	CreateTimeSlot(ctx context.Context, s *models.TimeSlot) error
	UpdateTimeSlot(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	DeleteTimeSlot(ctx context.Context, id uuid.UUID) (int64, error)
}

package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/models"
)

type Repository interface {
	// -------- Read --------
	ListAll(ctx context.Context) ([]models.Booking, error)

	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
	) ([]models.Booking, error)

	ListByDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	ListBetween(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Booking, error)

	// -------- Write --------
	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	// Delete returns the removed row, or gorm.ErrRecordNotFound.
	Delete(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	DeleteOwned(
		ctx context.Context,
		id uuid.UUID,
		userID uuid.UUID,
	) (*models.Booking, error)
}

// DraftStore keeps workflow drafts in transient storage.
type DraftStore interface {
	Save(ctx context.Context, d *Draft) error
	Get(ctx context.Context, id string) (*Draft, error)
	Delete(ctx context.Context, id string) error
}

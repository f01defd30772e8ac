package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	domain "github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/metrics"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/notify"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
)

type DeleteBooking struct {
	repo   domain.Repository
	events realtime.Publisher
	audit  *audit.Dispatcher
	notify Notifier
}

func NewDeleteBooking(
	repo domain.Repository,
	events realtime.Publisher,
	audit *audit.Dispatcher,
	notifier Notifier,
) *DeleteBooking {
	return &DeleteBooking{
		repo:   repo,
		events: events,
		audit:  audit,
		notify: notifier,
	}
}

// Any removes a booking regardless of owner. Staff only.
func (uc *DeleteBooking) Any(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
) error {

	if err := roles.RequireStaff(actor); err != nil {
		return err
	}

	b, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return notFound(err)
	}

	uc.deleted(ctx, actor, b, "staff")
	return nil
}

// Mine removes one of the caller's own bookings. Someone else's booking is
// reported as not found.
func (uc *DeleteBooking) Mine(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
) error {

	if err := roles.RequireAuth(actor); err != nil {
		return err
	}

	b, err := uc.repo.DeleteOwned(ctx, id, actor.UserID)
	if err != nil {
		return notFound(err)
	}

	uc.deleted(ctx, actor, b, "owner")
	return nil
}

func (uc *DeleteBooking) deleted(
	ctx context.Context,
	actor roles.Actor,
	b *models.Booking,
	by string,
) {
	metrics.IncBookingDeleted(by)

	uc.events.Publish(ctx, realtime.Event{
		Table:  realtime.TableBookings,
		Type:   realtime.TypeDelete,
		ID:     b.ID.String(),
		UserID: b.UserID.String(),
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: b.ID.String(),
		Metadata: map[string]string{"date": b.Date, "time": b.Time, "by": by},
	})

	if uc.notify != nil {
		uc.notify.Notify(notify.BookingCancelled(b.Name, b.Date, b.Time))
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("booking_not_found")
	}
	return err
}

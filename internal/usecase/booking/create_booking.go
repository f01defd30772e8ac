package booking

import (
	"context"
	"errors"
	"strings"
	"time"

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
	"github.com/BruksfildServices01/veve-booking/internal/timezone"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Name      string
	Phone     string
	Date      string
	Time      string
	ServiceID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	catalog Catalog
	policy  domain.Policy
	clock   timezone.Clock
	events  realtime.Publisher
	audit   *audit.Dispatcher
	notify  Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	catalog Catalog,
	policy domain.Policy,
	clock timezone.Clock,
	events realtime.Publisher,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		catalog: catalog,
		policy:  policy,
		clock:   clock,
		events:  events,
		audit:   audit,
		notify:  notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	actor roles.Actor,
	in CreateBookingInput,
) (*domain.View, error) {

	// --------------------------------------------------
	// 1️⃣ Sessão
	// --------------------------------------------------
	if err := roles.RequireAuth(actor); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Contato
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	if !validators.IsPersonName(name) {
		return nil, httperr.ErrBusiness("invalid_name")
	}
	if !validators.IsBRPhone(in.Phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}
	phone := validators.NormalizePhone(in.Phone)

	// --------------------------------------------------
	// 3️⃣ Data
	// --------------------------------------------------
	now := uc.clock()
	if err := uc.policy.CheckDate(in.Date, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Serviço
	// --------------------------------------------------
	var svc *models.Service
	if in.ServiceID != nil {
		s, err := activeService(ctx, uc.catalog, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		svc = s
	}

	// --------------------------------------------------
	// 5️⃣ Horário
	// --------------------------------------------------
	if err := checkSlot(ctx, uc.repo, uc.catalog, uc.policy, in.Date, in.Time, now); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			metrics.IncBookingCreated("slot_taken")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Criação
	// --------------------------------------------------
	b := &models.Booking{
		Name:      name,
		Phone:     phone,
		Date:      in.Date,
		Time:      in.Time,
		UserID:    actor.UserID,
		ServiceID: in.ServiceID,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			metrics.IncBookingCreated("slot_taken")
		} else {
			metrics.IncBookingCreated("error")
		}
		return nil, err
	}
	b.Service = svc
	metrics.IncBookingCreated("ok")

	// --------------------------------------------------
	// 7️⃣ Eventos
	// --------------------------------------------------
	view := domain.ToView(*b)

	uc.events.Publish(ctx, realtime.Event{
		Table:  realtime.TableBookings,
		Type:   realtime.TypeInsert,
		ID:     b.ID.String(),
		UserID: b.UserID.String(),
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID.String(),
		Metadata: map[string]string{"date": b.Date, "time": b.Time},
	})

	if uc.notify != nil {
		uc.notify.Notify(notify.BookingCreated(b.Name, b.Phone, b.Date, b.Time, view.ServiceName))
	}

	return &view, nil
}

func activeService(ctx context.Context, catalog Catalog, id uuid.UUID) (*models.Service, error) {
	svc, err := catalog.GetService(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}
	return svc, nil
}

// checkSlot validates hhmm against configured slots and the bookings already on date.
func checkSlot(
	ctx context.Context,
	repo domain.Repository,
	catalog Catalog,
	policy domain.Policy,
	date string,
	hhmm string,
	now time.Time,
) error {

	slots, err := catalog.ListTimeSlots(ctx, false)
	if err != nil {
		return err
	}

	sameDay, err := repo.ListByDate(ctx, date)
	if err != nil {
		return err
	}

	return policy.CheckTime(slots, domain.BookedTimes(sameDay, date), date, hhmm, now)
}

package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	domain "github.com/BruksfildServices01/veve-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

type TimeSlotManager struct {
	repo   domain.TimeSlotRepository
	events realtime.Publisher
	audit  *audit.Dispatcher
}

func NewTimeSlotManager(
	repo domain.TimeSlotRepository,
	events realtime.Publisher,
	dispatcher *audit.Dispatcher,
) *TimeSlotManager {
	return &TimeSlotManager{
		repo:   repo,
		events: events,
		audit:  dispatcher,
	}
}

func (m *TimeSlotManager) List(ctx context.Context, availableOnly bool) ([]models.TimeSlot, error) {
	return m.repo.ListTimeSlots(ctx, availableOnly)
}

func (m *TimeSlotManager) Create(
	ctx context.Context,
	actor roles.Actor,
	hhmm string,
) (*models.TimeSlot, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !validators.IsHHMM(hhmm) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	slot := &models.TimeSlot{Time: hhmm, IsAvailable: true}
	if err := m.repo.CreateTimeSlot(ctx, slot); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("time_slot_exists")
		}
		return nil, err
	}

	m.changed(ctx, actor, realtime.TypeInsert, "time_slot_created", slot.ID, map[string]any{"time": hhmm})
	return slot, nil
}

func (m *TimeSlotManager) SetAvailability(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
	available bool,
) (*models.TimeSlot, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}

	n, err := m.repo.UpdateTimeSlot(ctx, id, map[string]any{"is_available": available})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, httperr.ErrBusiness("time_slot_not_found")
	}

	slot, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	m.changed(ctx, actor, realtime.TypeUpdate, "time_slot_updated", id, map[string]any{"is_available": available})
	return slot, nil
}

func (m *TimeSlotManager) Toggle(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
) (*models.TimeSlot, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}

	slot, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.SetAvailability(ctx, actor, id, !slot.IsAvailable)
}

func (m *TimeSlotManager) Delete(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
) error {

	if err := roles.RequireAdmin(actor); err != nil {
		return err
	}

	n, err := m.repo.DeleteTimeSlot(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness("time_slot_not_found")
	}

	m.changed(ctx, actor, realtime.TypeDelete, "time_slot_deleted", id, nil)
	return nil
}

func (m *TimeSlotManager) get(ctx context.Context, id uuid.UUID) (*models.TimeSlot, error) {
	slot, err := m.repo.GetTimeSlot(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("time_slot_not_found")
	}
	return slot, err
}

func (m *TimeSlotManager) changed(
	ctx context.Context,
	actor roles.Actor,
	kind string,
	action string,
	id uuid.UUID,
	meta any,
) {
	m.events.Publish(ctx, realtime.Event{
		Table: realtime.TableTimeSlots,
		Type:  kind,
		ID:    id.String(),
	})

	m.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "time_slot",
		EntityID: id.String(),
		Metadata: meta,
	})
}

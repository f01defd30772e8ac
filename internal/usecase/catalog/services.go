package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	domain "github.com/BruksfildServices01/veve-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/infra/storage"
	"github.com/BruksfildServices01/veve-booking/internal/media"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
)

type CreateServiceInput struct {
	Name            string
	Category        string
	Price           decimal.Decimal
	DurationMinutes int
}

type ServiceManager struct {
	repo   domain.ServiceRepository
	events realtime.Publisher
	audit  *audit.Dispatcher
	store  storage.ObjectStore
}

// NewServiceManager accepts a nil store; image upload then reports media_disabled.
func NewServiceManager(
	repo domain.ServiceRepository,
	events realtime.Publisher,
	dispatcher *audit.Dispatcher,
	store storage.ObjectStore,
) *ServiceManager {
	return &ServiceManager{
		repo:   repo,
		events: events,
		audit:  dispatcher,
		store:  store,
	}
}

func (m *ServiceManager) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return m.repo.ListServices(ctx, activeOnly)
}

func (m *ServiceManager) Create(
	ctx context.Context,
	actor roles.Actor,
	in CreateServiceInput,
) (*models.Service, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusiness("invalid_name")
	}
	if err := domain.ValidatePrice(in.Price); err != nil {
		return nil, err
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = 30
	}
	if err := domain.ValidateDuration(duration); err != nil {
		return nil, err
	}

	svc := &models.Service{
		Name:            name,
		Category:        strings.TrimSpace(in.Category),
		Price:           in.Price.Round(2),
		DurationMinutes: duration,
		Active:          true,
	}
	if err := m.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	m.changed(ctx, actor, realtime.TypeInsert, "service_created", svc.ID, map[string]any{"name": svc.Name})
	return svc, nil
}

func (m *ServiceManager) Update(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
	patch domain.ServicePatch,
) (*models.Service, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	fields := patch.Fields()
	if len(fields) > 0 {
		n, err := m.repo.UpdateService(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	svc, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		m.changed(ctx, actor, realtime.TypeUpdate, "service_updated", id, fields)
	}
	return svc, nil
}

// Toggle flips the active flag.
func (m *ServiceManager) Toggle(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
) (*models.Service, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}

	svc, err := m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	active := !svc.Active
	return m.Update(ctx, actor, id, domain.ServicePatch{Active: &active})
}

func (m *ServiceManager) Delete(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
) error {

	if err := roles.RequireAdmin(actor); err != nil {
		return err
	}

	n, err := m.repo.DeleteService(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness("service_not_found")
	}

	m.changed(ctx, actor, realtime.TypeDelete, "service_deleted", id, nil)
	return nil
}

func (m *ServiceManager) UploadImage(
	ctx context.Context,
	actor roles.Actor,
	id uuid.UUID,
	r io.Reader,
) (*models.Service, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if m.store == nil {
		return nil, httperr.ErrBusiness("media_disabled")
	}

	if _, err := m.get(ctx, id); err != nil {
		return nil, err
	}

	body, err := media.ToWebP(r)
	if errors.Is(err, media.ErrUnsupportedImage) {
		return nil, httperr.ErrBusiness("invalid_image")
	}
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("services/%s/%s.webp", id, uuid.NewString())
	url, err := m.store.Put(ctx, key, "image/webp", body)
	if err != nil {
		return nil, err
	}

	return m.Update(ctx, actor, id, domain.ServicePatch{ImageURL: &url})
}

func (m *ServiceManager) get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := m.repo.GetService(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, err
}

func (m *ServiceManager) changed(
	ctx context.Context,
	actor roles.Actor,
	kind string,
	action string,
	id uuid.UUID,
	meta any,
) {
	m.events.Publish(ctx, realtime.Event{
		Table: realtime.TableServices,
		Type:  kind,
		ID:    id.String(),
	})

	m.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "service",
		EntityID: id.String(),
		Metadata: meta,
	})
}

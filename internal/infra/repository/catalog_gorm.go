package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

var (
	_ catalog.ServiceRepository  = (*CatalogGormRepository)(nil)
	_ catalog.TimeSlotRepository = (*CatalogGormRepository)(nil)
)

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Order("category ASC, name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var list []models.Service
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	id uuid.UUID,
	fields map[string]any,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *CatalogGormRepository) DeleteService(
	ctx context.Context,
	id uuid.UUID,
) (int64, error) {

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// bookings keep their row and lose the reference
		if err := tx.Model(&models.Booking{}).
			Where("service_id = ?", id).
			Update("service_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Service{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// --------------------------------------------------
// Time slots
// --------------------------------------------------

func (r *CatalogGormRepository) ListTimeSlots(
	ctx context.Context,
	availableOnly bool,
) ([]models.TimeSlot, error) {

	q := r.db.WithContext(ctx).Order("time ASC")
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}

	var list []models.TimeSlot
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogGormRepository) GetTimeSlot(
	ctx context.Context,
	id uuid.UUID,
) (*models.TimeSlot, error) {

	var s models.TimeSlot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateTimeSlot(
	ctx context.Context,
	s *models.TimeSlot,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) UpdateTimeSlot(
	ctx context.Context,
	id uuid.UUID,
	fields map[string]any,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *CatalogGormRepository) DeleteTimeSlot(
	ctx context.Context,
	id uuid.UUID,
) (int64, error) {

	res := r.db.WithContext(ctx).Delete(&models.TimeSlot{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

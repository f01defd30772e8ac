package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

func (r *BookingGormRepository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Service").
		Order("date ASC, time ASC")
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingGormRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	var list []models.Booking
	if err := r.ordered(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.ordered(ctx).
		Where("user_id = ?", userID).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListByDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListBetween is inclusive on both ends. Empty bounds are open.
func (r *BookingGormRepository) ListBetween(
	ctx context.Context,
	from string,
	to string,
) ([]models.Booking, error) {

	q := r.ordered(ctx)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {
	return r.deleteWhere(ctx, "id = ?", id)
}

func (r *BookingGormRepository) DeleteOwned(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*models.Booking, error) {
	return r.deleteWhere(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *BookingGormRepository) deleteWhere(
	ctx context.Context,
	query string,
	args ...any,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(query, args...).First(&b).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Booking{}, "id = ?", b.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

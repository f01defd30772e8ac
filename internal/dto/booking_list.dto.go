package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/domain/booking"
)

// BookingListDTO is the row shape of the staff bookings list.
type BookingListDTO struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	UserID      uuid.UUID `json:"user_id"`
	ServiceName *string   `json:"service_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromBookingViews(views []booking.View) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(views))
	for _, v := range views {
		out = append(out, BookingListDTO{
			ID:          v.ID,
			Date:        v.Date,
			Time:        v.Time,
			Name:        v.Name,
			Phone:       v.Phone,
			UserID:      v.UserID,
			ServiceName: v.ServiceName,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out
}

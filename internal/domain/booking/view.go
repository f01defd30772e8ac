package booking

import (
	"time"

	"github.com/BruksfildServices01/veve-booking/internal/models"
)

// View is a booking with the name of its service.
type View struct {
	models.Booking
	ServiceName *string `json:"service_name"`
}

func ToView(b models.Booking) View {
	v := View{Booking: b}
	if b.Service != nil {
		name := b.Service.Name
		v.ServiceName = &name
	}
	return v
}

func ToViews(list []models.Booking) []View {
	out := make([]View, 0, len(list))
	for _, b := range list {
		out = append(out, ToView(b))
	}
	return out
}

// Split separates bookings that have not started yet from past ones.
// Upcoming stays in date, time order; past comes most recent first.
func (p Policy) Split(views []View, now time.Time) (upcoming, past []View) {
	upcoming = []View{}
	past = []View{}

	for _, v := range views {
		start, err := p.SlotStart(v.Date, v.Time)
		if err != nil || start.Before(now) {
			past = append(past, v)
			continue
		}
		upcoming = append(upcoming, v)
	}

	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}
	return upcoming, past
}

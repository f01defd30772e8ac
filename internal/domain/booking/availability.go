package booking

import (
	"time"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Slot reasons
const (
	ReasonUnavailable = "unavailable"
	ReasonBooked      = "booked"
	ReasonElapsed     = "elapsed"
)

// Day reasons
const (
	ReasonPastDate  = "past_date"
	ReasonClosedDay = "closed_day"
)

const (
	DefaultCalendarDays = 30
	MaxCalendarDays     = 90
)

// Policy holds the shop rules for which days and times can be booked.
type Policy struct {
	Location       *time.Location
	ClosedWeekdays []time.Weekday
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type Day struct {
	Date       string `json:"date"`
	Weekday    int    `json:"weekday"`
	Selectable bool   `json:"selectable"`
	Reason     string `json:"reason,omitempty"`
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) isClosed(wd time.Weekday) bool {
	for _, c := range p.ClosedWeekdays {
		if c == wd {
			return true
		}
	}
	return false
}

func (p Policy) startOfDay(t time.Time) time.Time {
	t = t.In(p.loc())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc())
}

func (p Policy) ParseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, p.loc())
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return day, nil
}

// SlotStart is the instant a slot begins on the given day.
func (p Policy) SlotStart(date, hhmm string) (time.Time, error) {
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hhmm, p.loc())
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return start, nil
}

func (p Policy) dayReason(day, today time.Time) string {
	if day.Before(today) {
		return ReasonPastDate
	}
	if p.isClosed(day.Weekday()) {
		return ReasonClosedDay
	}
	return ""
}

// CheckDate rejects past days and closed weekdays. Today is allowed.
func (p Policy) CheckDate(date string, now time.Time) error {
	day, err := p.ParseDate(date)
	if err != nil {
		return err
	}
	if reason := p.dayReason(day, p.startOfDay(now)); reason != "" {
		return httperr.ErrBusiness(reason)
	}
	return nil
}

// BookedTimes collects the times already taken on date.
func BookedTimes(bookings []models.Booking, date string) map[string]struct{} {
	booked := make(map[string]struct{})
	for _, b := range bookings {
		if b.Date == date {
			booked[b.Time] = struct{}{}
		}
	}
	return booked
}

// Evaluate flags every configured slot for date. Slots come back in input order.
// On a past or closed day every slot carries the day's reason.
func (p Policy) Evaluate(
	slots []models.TimeSlot,
	booked map[string]struct{},
	date string,
	now time.Time,
) []Slot {

	closed := ""
	if day, err := p.ParseDate(date); err == nil {
		closed = p.dayReason(day, p.startOfDay(now))
	}

	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if closed != "" {
			out = append(out, Slot{Time: s.Time, Reason: closed})
			continue
		}
		out = append(out, p.evaluateOne(s, booked, date, now))
	}
	return out
}

func (p Policy) evaluateOne(
	s models.TimeSlot,
	booked map[string]struct{},
	date string,
	now time.Time,
) Slot {

	slot := Slot{Time: s.Time}

	switch {
	case !s.IsAvailable:
		slot.Reason = ReasonUnavailable
	case isBooked(booked, s.Time):
		slot.Reason = ReasonBooked
	default:
		start, err := p.SlotStart(date, s.Time)
		if err != nil || start.Before(now) {
			slot.Reason = ReasonElapsed
		}
	}

	slot.Available = slot.Reason == ""
	return slot
}

func isBooked(booked map[string]struct{}, t string) bool {
	_, ok := booked[t]
	return ok
}

// Selectable keeps only the available times.
func Selectable(slots []Slot) []string {
	var out []string
	for _, s := range slots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}

// AvailableSlots is Evaluate followed by Selectable.
func (p Policy) AvailableSlots(
	slots []models.TimeSlot,
	booked map[string]struct{},
	date string,
	now time.Time,
) []string {
	return Selectable(p.Evaluate(slots, booked, date, now))
}

// CheckTime validates one chosen time against the slot table.
func (p Policy) CheckTime(
	slots []models.TimeSlot,
	booked map[string]struct{},
	date string,
	hhmm string,
	now time.Time,
) error {

	for _, s := range slots {
		if s.Time != hhmm {
			continue
		}

		switch p.evaluateOne(s, booked, date, now).Reason {
		case "":
			return nil
		case ReasonUnavailable:
			return httperr.ErrBusiness("time_unavailable")
		case ReasonBooked:
			return httperr.ErrBusiness("slot_taken")
		default:
			return httperr.ErrBusiness("time_elapsed")
		}
	}

	return httperr.ErrBusiness("time_slot_not_found")
}

// Calendar lists days starting at from with their selectability.
func (p Policy) Calendar(from time.Time, days int, now time.Time) []Day {
	if days <= 0 {
		days = DefaultCalendarDays
	}
	if days > MaxCalendarDays {
		days = MaxCalendarDays
	}

	today := p.startOfDay(now)
	cur := p.startOfDay(from)

	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		day := cur.AddDate(0, 0, i)
		reason := p.dayReason(day, today)
		out = append(out, Day{
			Date:       day.Format(DateLayout),
			Weekday:    int(day.Weekday()),
			Selectable: reason == "",
			Reason:     reason,
		})
	}
	return out
}

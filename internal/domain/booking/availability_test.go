package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func testPolicy() Policy {
	return Policy{Location: saoPaulo, ClosedWeekdays: []time.Weekday{time.Sunday}}
}

func slots(times ...string) []models.TimeSlot {
	out := make([]models.TimeSlot, 0, len(times))
	for _, tm := range times {
		out = append(out, models.TimeSlot{Time: tm, IsAvailable: true})
	}
	return out
}

func TestAvailableSlots_ExcludesBookedTime(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, saoPaulo)

	bookings := []models.Booking{
		{Date: "2025-06-10", Time: "14:00"},
		{Date: "2025-06-11", Time: "15:00"},
	}
	booked := BookedTimes(bookings, "2025-06-10")

	got := p.AvailableSlots(slots("09:00", "14:00", "15:00"), booked, "2025-06-10", now)
	want := []string{"09:00", "15:00"}

	if len(got) != len(want) {
		t.Fatalf("AvailableSlots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AvailableSlots = %v, want %v", got, want)
		}
	}
}

func TestEvaluate_Reasons(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, saoPaulo)

	in := slots("09:00", "13:00", "14:00", "15:00")
	in[3].IsAvailable = false
	booked := map[string]struct{}{"14:00": {}}

	got := p.Evaluate(in, booked, "2025-06-10", now)

	want := map[string]string{
		"09:00": ReasonElapsed,
		"13:00": "",
		"14:00": ReasonBooked,
		"15:00": ReasonUnavailable,
	}
	for _, s := range got {
		if s.Reason != want[s.Time] {
			t.Errorf("%s: reason = %q, want %q", s.Time, s.Reason, want[s.Time])
		}
		if s.Available != (want[s.Time] == "") {
			t.Errorf("%s: available = %v", s.Time, s.Available)
		}
	}
}

func TestEvaluate_ClosedAndPastDays(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, saoPaulo)

	for date, want := range map[string]string{
		"2025-06-15": ReasonClosedDay,
		"2025-06-09": ReasonPastDate,
	} {
		got := p.Evaluate(slots("09:00", "14:00"), nil, date, now)
		if len(got) != 2 {
			t.Fatalf("%s: expected every slot, got %v", date, got)
		}
		for _, s := range got {
			if s.Available || s.Reason != want {
				t.Errorf("%s %s: got (%v, %q), want (false, %q)", date, s.Time, s.Available, s.Reason, want)
			}
		}
	}
}

func TestCheckDate(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, saoPaulo) // Tuesday

	cases := []struct {
		date string
		code string
	}{
		{"2025-06-09", ReasonPastDate},
		{"2025-06-10", ""},
		{"2025-06-15", ReasonClosedDay},
		{"2025-06-16", ""},
		{"10/06/2025", "invalid_date"},
	}

	for _, tc := range cases {
		err := p.CheckDate(tc.date, now)
		if tc.code == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tc.date, err)
			}
			continue
		}
		if !httperr.IsBusiness(err, tc.code) {
			t.Errorf("%s: err = %v, want %s", tc.date, err, tc.code)
		}
	}
}

func TestCheckDate_NoClosedDays(t *testing.T) {
	p := Policy{Location: saoPaulo}
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, saoPaulo)

	if err := p.CheckDate("2025-06-15", now); err != nil {
		t.Errorf("sunday should be open: %v", err)
	}
}

func TestCheckTime(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, saoPaulo)

	in := slots("09:00", "13:00", "14:00", "15:00")
	in[3].IsAvailable = false
	booked := map[string]struct{}{"14:00": {}}

	cases := map[string]string{
		"13:00": "",
		"09:00": "time_elapsed",
		"14:00": "slot_taken",
		"15:00": "time_unavailable",
		"16:00": "time_slot_not_found",
	}
	for tm, code := range cases {
		err := p.CheckTime(in, booked, "2025-06-10", tm, now)
		if code == "" {
			if err != nil {
				t.Errorf("%s: unexpected %v", tm, err)
			}
			continue
		}
		if !httperr.IsBusiness(err, code) {
			t.Errorf("%s: err = %v, want %s", tm, err, code)
		}
	}
}

func TestCalendar(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, saoPaulo)

	days := p.Calendar(time.Date(2025, 6, 8, 0, 0, 0, 0, saoPaulo), 10, now)
	if len(days) != 10 {
		t.Fatalf("len = %d", len(days))
	}

	byDate := map[string]Day{}
	for _, d := range days {
		byDate[d.Date] = d
	}

	if d := byDate["2025-06-09"]; d.Selectable || d.Reason != ReasonPastDate {
		t.Errorf("yesterday = %+v", d)
	}
	if d := byDate["2025-06-10"]; !d.Selectable {
		t.Errorf("today = %+v", d)
	}
	if d := byDate["2025-06-15"]; d.Selectable || d.Reason != ReasonClosedDay {
		t.Errorf("sunday = %+v", d)
	}

	if got := len(p.Calendar(now, 500, now)); got != MaxCalendarDays {
		t.Errorf("calendar not capped: %d", got)
	}
}

func TestSplit(t *testing.T) {
	p := testPolicy()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, saoPaulo)

	views := ToViews([]models.Booking{
		{Date: "2025-06-01", Time: "09:00"},
		{Date: "2025-06-10", Time: "11:00"},
		{Date: "2025-06-10", Time: "12:00"},
		{Date: "2025-06-12", Time: "09:00"},
	})

	upcoming, past := p.Split(views, now)
	if len(upcoming) != 2 || len(past) != 2 {
		t.Fatalf("upcoming=%d past=%d", len(upcoming), len(past))
	}
	if past[0].Time != "11:00" {
		t.Errorf("past not most-recent first: %+v", past)
	}
	if upcoming[0].Time != "12:00" {
		t.Errorf("upcoming order: %+v", upcoming)
	}
}

func TestToView_ServiceName(t *testing.T) {
	v := ToView(models.Booking{Service: &models.Service{Name: "Corte"}})
	if v.ServiceName == nil || *v.ServiceName != "Corte" {
		t.Errorf("ServiceName = %v", v.ServiceName)
	}
	if ToView(models.Booking{}).ServiceName != nil {
		t.Error("expected nil service name")
	}
}

package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

// ===============================
// Workflow States
// ===============================

type State string

const (
	StateNoService     State = "no_service"
	StateServiceChosen State = "service_chosen"
	StateDateChosen    State = "date_chosen"
	StateTimeChosen    State = "time_chosen"
	StateReadyToSubmit State = "ready_to_submit"
	StateSubmitted     State = "submitted"
)

type Event string

const (
	EventChooseService Event = "choose_service"
	EventChooseDate    Event = "choose_date"
	EventChooseTime    Event = "choose_time"
	EventSetContact    Event = "set_contact"
	EventSubmit        Event = "submit"
)

// DraftTTL bounds how long selections survive a login round-trip.
const DraftTTL = 24 * time.Hour

type Transition struct {
	From  State
	Event Event
	To    State
}

var transitions = []Transition{
	{From: StateNoService, Event: EventChooseService, To: StateServiceChosen},
	{From: StateServiceChosen, Event: EventChooseService, To: StateServiceChosen},
	{From: StateDateChosen, Event: EventChooseService, To: StateServiceChosen},
	{From: StateTimeChosen, Event: EventChooseService, To: StateServiceChosen},
	{From: StateReadyToSubmit, Event: EventChooseService, To: StateServiceChosen},

	{From: StateServiceChosen, Event: EventChooseDate, To: StateDateChosen},
	{From: StateDateChosen, Event: EventChooseDate, To: StateDateChosen},
	{From: StateTimeChosen, Event: EventChooseDate, To: StateDateChosen},
	{From: StateReadyToSubmit, Event: EventChooseDate, To: StateDateChosen},

	{From: StateDateChosen, Event: EventChooseTime, To: StateTimeChosen},
	{From: StateTimeChosen, Event: EventChooseTime, To: StateTimeChosen},
	{From: StateReadyToSubmit, Event: EventChooseTime, To: StateTimeChosen},

	{From: StateTimeChosen, Event: EventSetContact, To: StateReadyToSubmit},
	{From: StateReadyToSubmit, Event: EventSetContact, To: StateReadyToSubmit},

	{From: StateReadyToSubmit, Event: EventSubmit, To: StateSubmitted},
}

type transitionKey struct {
	From  State
	Event Event
}

var transitionMap = func() map[transitionKey]State {
	m := make(map[transitionKey]State, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.From, t.Event}] = t.To
	}
	return m
}()

// Next returns the state reached by firing ev from `from`.
func Next(from State, ev Event) (State, error) {
	to, ok := transitionMap[transitionKey{from, ev}]
	if !ok {
		return "", httperr.ErrBusiness("invalid_transition")
	}
	return to, nil
}

func Transitions() []Transition {
	return transitions
}

// ===============================
// Draft
// ===============================

// Draft holds the selections of one booking flow until it is submitted.
type Draft struct {
	ID        string     `json:"id"`
	State     State      `json:"state"`
	ServiceID *uuid.UUID `json:"service_id,omitempty"`
	Date      string     `json:"date,omitempty"`
	Time      string     `json:"time,omitempty"`
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewDraft(now time.Time) *Draft {
	return &Draft{
		ID:        uuid.NewString(),
		State:     StateNoService,
		UpdatedAt: now,
	}
}

func (d *Draft) fire(ev Event, now time.Time) error {
	to, err := Next(d.State, ev)
	if err != nil {
		return err
	}
	d.State = to
	d.UpdatedAt = now
	return nil
}

// ChooseService resets any date or time picked before.
func (d *Draft) ChooseService(serviceID uuid.UUID, now time.Time) error {
	if err := d.fire(EventChooseService, now); err != nil {
		return err
	}
	d.ServiceID = &serviceID
	d.Date = ""
	d.Time = ""
	return nil
}

// ChooseDate resets the time picked before.
func (d *Draft) ChooseDate(date string, now time.Time) error {
	if err := d.fire(EventChooseDate, now); err != nil {
		return err
	}
	d.Date = date
	d.Time = ""
	return nil
}

func (d *Draft) ChooseTime(hhmm string, now time.Time) error {
	if err := d.fire(EventChooseTime, now); err != nil {
		return err
	}
	d.Time = hhmm
	return nil
}

func (d *Draft) SetContact(name, phone string, now time.Time) error {
	if err := d.fire(EventSetContact, now); err != nil {
		return err
	}
	d.Name = name
	d.Phone = phone
	return nil
}

// CanSubmit checks the transition without applying it.
func (d *Draft) CanSubmit() error {
	_, err := Next(d.State, EventSubmit)
	return err
}

func (d *Draft) MarkSubmitted(bookingID uuid.UUID, now time.Time) error {
	if err := d.fire(EventSubmit, now); err != nil {
		return err
	}
	d.BookingID = &bookingID
	return nil
}

// Prefill copies profile contact data into empty fields.
func (d *Draft) Prefill(name, phone string) {
	if d.Name == "" {
		d.Name = name
	}
	if d.Phone == "" {
		d.Phone = phone
	}
}

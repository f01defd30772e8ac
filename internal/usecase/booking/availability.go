package booking

import (
	"context"

	domain "github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/timezone"
)

type DayAvailability struct {
	Date  string        `json:"date"`
	Slots []domain.Slot `json:"slots"`
	Times []string      `json:"times"`
}

type Availability struct {
	repo    domain.Repository
	catalog Catalog
	policy  domain.Policy
	clock   timezone.Clock
}

func NewAvailability(
	repo domain.Repository,
	catalog Catalog,
	policy domain.Policy,
	clock timezone.Clock,
) *Availability {
	return &Availability{repo: repo, catalog: catalog, policy: policy, clock: clock}
}

// ForDate lists every configured slot of date with its state.
// Closed or past days come back with no selectable time.
func (uc *Availability) ForDate(ctx context.Context, date string) (*DayAvailability, error) {
	if _, err := uc.policy.ParseDate(date); err != nil {
		return nil, err
	}

	now := uc.clock()

	slots, err := uc.catalog.ListTimeSlots(ctx, false)
	if err != nil {
		return nil, err
	}

	sameDay, err := uc.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	evaluated := uc.policy.Evaluate(slots, domain.BookedTimes(sameDay, date), date, now)
	times := domain.Selectable(evaluated)
	if times == nil {
		times = []string{}
	}

	return &DayAvailability{Date: date, Slots: evaluated, Times: times}, nil
}

// Calendar lists days starting at from. An empty from means today.
func (uc *Availability) Calendar(from string, days int) ([]domain.Day, error) {
	now := uc.clock()

	start := now
	if from != "" {
		t, err := uc.policy.ParseDate(from)
		if err != nil {
			return nil, err
		}
		start = t
	}

	return uc.policy.Calendar(start, days, now), nil
}

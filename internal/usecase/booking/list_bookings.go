package booking

import (
	"context"

	domain "github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/timezone"
)

type ListBookings struct {
	repo   domain.Repository
	policy domain.Policy
	clock  timezone.Clock
}

func NewListBookings(
	repo domain.Repository,
	policy domain.Policy,
	clock timezone.Clock,
) *ListBookings {
	return &ListBookings{repo: repo, policy: policy, clock: clock}
}

// All returns every booking ordered by date and time. Staff only.
func (uc *ListBookings) All(
	ctx context.Context,
	actor roles.Actor,
) ([]domain.View, error) {

	if err := roles.RequireStaff(actor); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ToViews(list), nil
}

type MyBookings struct {
	Upcoming []domain.View `json:"upcoming"`
	Past     []domain.View `json:"past"`
}

// Mine returns the caller's bookings split around now.
func (uc *ListBookings) Mine(
	ctx context.Context,
	actor roles.Actor,
) (*MyBookings, error) {

	if err := roles.RequireAuth(actor); err != nil {
		return nil, err
	}

	list, err := uc.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	upcoming, past := uc.policy.Split(domain.ToViews(list), uc.clock())
	return &MyBookings{Upcoming: upcoming, Past: past}, nil
}

package roles

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListRoles(ctx context.Context, userID uuid.UUID) ([]Role, error)
}

type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the empty set without querying when userID is nil.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (Set, error) {
	if userID == uuid.Nil {
		return Set{}, nil
	}

	list, err := r.repo.ListRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewSet(list...), nil
}

func (r *Resolver) Actor(ctx context.Context, userID uuid.UUID) (Actor, error) {
	set, err := r.Resolve(ctx, userID)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: userID, Roles: set}, nil
}

package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/models"
)

// UserSummary is one row of the admin user list.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	IsAdmin   bool      `json:"is_admin"`
	Roles     []string  `json:"roles"`
}

type Repository interface {
	roles.Repository

	// -------- Users --------
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// CreateAccount inserts user, profile and the initial role atomically.
	CreateAccount(
		ctx context.Context,
		user *models.User,
		profile *models.Profile,
		role roles.Role,
	) error

	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error

	// -------- Admin --------
	ListUsers(ctx context.Context) ([]UserSummary, error)

	// GrantRole reports whether a new row was inserted.
	GrantRole(ctx context.Context, userID uuid.UUID, role roles.Role) (bool, error)
	RevokeRole(ctx context.Context, userID uuid.UUID, role roles.Role) (int64, error)

	// DeleteUser removes bookings, roles, profile and user in one transaction.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/auth"
)

// Registrar creates accounts with the default cliente role.
type Registrar interface {
	Register(ctx context.Context, in auth.SignUpInput) (*models.User, error)
}

type Users struct {
	repo      account.Repository
	registrar Registrar
	events    realtime.Publisher
	audit     *audit.Dispatcher
}

func NewUsers(
	repo account.Repository,
	registrar Registrar,
	events realtime.Publisher,
	dispatcher *audit.Dispatcher,
) *Users {
	return &Users{
		repo:      repo,
		registrar: registrar,
		events:    events,
		audit:     dispatcher,
	}
}

func (uc *Users) List(ctx context.Context, actor roles.Actor) ([]account.UserSummary, error) {
	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.repo.ListUsers(ctx)
}

// ToggleAdmin flips the admin role based on the state the caller saw.
// It returns the resulting admin flag.
func (uc *Users) ToggleAdmin(
	ctx context.Context,
	actor roles.Actor,
	userID uuid.UUID,
	currentIsAdmin bool,
) (bool, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return false, err
	}
	if currentIsAdmin && userID == actor.UserID {
		return false, httperr.ErrBusiness("cannot_demote_self")
	}
	if err := uc.exists(ctx, userID); err != nil {
		return false, err
	}

	action, kind := "admin_granted", realtime.TypeInsert
	if currentIsAdmin {
		action, kind = "admin_revoked", realtime.TypeDelete
		if _, err := uc.repo.RevokeRole(ctx, userID, roles.Admin); err != nil {
			return false, err
		}
	} else {
		if _, err := uc.repo.GrantRole(ctx, userID, roles.Admin); err != nil {
			return false, err
		}
	}

	uc.rolesChanged(ctx, actor, userID, kind, action, roles.Admin)
	return !currentIsAdmin, nil
}

// Delete removes the user and everything it owns in one transaction.
func (uc *Users) Delete(ctx context.Context, actor roles.Actor, userID uuid.UUID) error {
	if err := roles.RequireAdmin(actor); err != nil {
		return err
	}
	if userID == actor.UserID {
		return httperr.ErrBusiness("cannot_delete_self")
	}

	if err := uc.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("user_not_found")
		}
		return err
	}

	uc.events.Publish(ctx, realtime.Event{
		Table:  realtime.TableProfiles,
		Type:   realtime.TypeDelete,
		ID:     userID.String(),
		UserID: userID.String(),
	})
	uc.events.Publish(ctx, realtime.Event{
		Table: realtime.TableBookings,
		Type:  realtime.TypeDelete,
		ID:    userID.String(),
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: userID.String(),
	})
	return nil
}

func (uc *Users) exists(ctx context.Context, userID uuid.UUID) error {
	_, err := uc.repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("user_not_found")
	}
	return err
}

func (uc *Users) rolesChanged(
	ctx context.Context,
	actor roles.Actor,
	userID uuid.UUID,
	kind string,
	action string,
	role roles.Role,
) {
	uc.events.Publish(ctx, realtime.Event{
		Table:  realtime.TableUserRoles,
		Type:   kind,
		ID:     userID.String(),
		UserID: userID.String(),
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "user_role",
		EntityID: userID.String(),
		Metadata: map[string]string{"role": string(role)},
	})
}

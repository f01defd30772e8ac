package admin

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/auth"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

// PromoteResult mirrors the promote_user_role RPC payload.
type PromoteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Role    string `json:"role,omitempty"`
}

// PromoteUserRole grants role to the account registered under email.
// Lookup failures come back inside the result; only authorization and
// infrastructure failures are returned as errors. Promoting twice is a no-op.
func (uc *Users) PromoteUserRole(
	ctx context.Context,
	actor roles.Actor,
	email string,
	role string,
) (*PromoteResult, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}

	r, ok := roles.Parse(role)
	if !ok || r == roles.Cliente {
		return &PromoteResult{Error: "Papel inválido. Use admin ou barbeiro."}, nil
	}

	user, err := uc.repo.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &PromoteResult{Error: "Usuário não encontrado com este email"}, nil
	}
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.GrantRole(ctx, user.ID, r)
	if err != nil {
		return nil, err
	}
	if created {
		uc.rolesChanged(ctx, actor, user.ID, realtime.TypeInsert, "role_promoted", r)
	}

	return &PromoteResult{
		Success: true,
		Message: fmt.Sprintf("Usuário promovido a %s com sucesso!", r),
		UserID:  user.ID.String(),
		Role:    string(r),
	}, nil
}

type CreateStaffInput struct {
	Email    string
	Password string
	Role     string
}

type CreateStaffResult struct {
	UserID               string `json:"user_id"`
	Message              string `json:"message"`
	NeedsManualPromotion bool   `json:"needs_manual_promotion"`
}

// CreateStaffUser registers an account named after the email local part and
// then promotes it. A failed promotion still reports the account as created.
func (uc *Users) CreateStaffUser(
	ctx context.Context,
	actor roles.Actor,
	in CreateStaffInput,
) (*CreateStaffResult, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = string(roles.Admin)
	}
	if r, ok := roles.Parse(role); !ok || r == roles.Cliente {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	user, err := uc.registrar.Register(ctx, auth.SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		FullName: validators.LocalPart(in.Email),
	})
	if err != nil {
		return nil, err
	}

	res, err := uc.PromoteUserRole(ctx, actor, user.Email, role)
	if err != nil || !res.Success {
		if err != nil {
			log.Printf("[admin] promote new user %s: %v", user.ID, err)
		}
		return &CreateStaffResult{
			UserID:               user.ID.String(),
			Message:              "Usuário criado, mas não foi possível promover automaticamente. Email: " + user.Email,
			NeedsManualPromotion: true,
		}, nil
	}

	return &CreateStaffResult{
		UserID:  user.ID.String(),
		Message: fmt.Sprintf("Usuário %s criado com sucesso!", role),
	}, nil
}

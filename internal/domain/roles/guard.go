package roles

import "github.com/BruksfildServices01/veve-booking/internal/httperr"

func RequireAuth(a Actor) error {
	if !a.Authenticated() {
		return httperr.ErrBusiness("login_required")
	}
	return nil
}

func RequireStaff(a Actor) error {
	if err := RequireAuth(a); err != nil {
		return err
	}
	if !a.IsStaff() {
		return httperr.ErrBusiness("staff_only")
	}
	return nil
}

// RequireAdmin fails with login_required before admins_only.
func RequireAdmin(a Actor) error {
	if err := RequireAuth(a); err != nil {
		return err
	}
	if !a.IsAdmin() {
		return httperr.ErrBusiness("admins_only")
	}
	return nil
}

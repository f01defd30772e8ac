package roles

import (
	"sort"

	"github.com/google/uuid"
)

type Role string

const (
	Admin    Role = "admin"
	Barbeiro Role = "barbeiro"
	Cliente  Role = "cliente"
)

func Parse(s string) (Role, bool) {
	switch Role(s) {
	case Admin, Barbeiro, Cliente:
		return Role(s), true
	}
	return "", false
}

// Set is the role membership of one user.
type Set map[Role]struct{}

func NewSet(rs ...Role) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

func (s Set) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s Set) IsAdmin() bool {
	return s.Has(Admin)
}

// IsStaff is true for admins and barbers.
func (s Set) IsStaff() bool {
	return s.Has(Admin) || s.Has(Barbeiro)
}

func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// Actor is the caller of an operation. The zero value is anonymous.
type Actor struct {
	UserID uuid.UUID
	Roles  Set
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated() && a.Roles.IsAdmin()
}

func (a Actor) IsStaff() bool {
	return a.Authenticated() && a.Roles.IsStaff()
}

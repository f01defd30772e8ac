package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

type fakeRepo struct {
	roles []Role
	err   error
	calls int
}

func (f *fakeRepo) ListRoles(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	f.calls++
	return f.roles, f.err
}

func TestSetDerivations(t *testing.T) {
	cases := []struct {
		name    string
		set     Set
		admin   bool
		staff   bool
		strings []string
	}{
		{"empty", NewSet(), false, false, []string{}},
		{"cliente", NewSet(Cliente), false, false, []string{"cliente"}},
		{"barbeiro", NewSet(Barbeiro, Cliente), false, true, []string{"barbeiro", "cliente"}},
		{"admin", NewSet(Admin), true, true, []string{"admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set.IsAdmin() != tc.admin {
				t.Errorf("IsAdmin = %v", tc.set.IsAdmin())
			}
			if tc.set.IsStaff() != tc.staff {
				t.Errorf("IsStaff = %v", tc.set.IsStaff())
			}
			got := tc.set.Strings()
			if len(got) != len(tc.strings) {
				t.Fatalf("Strings = %v, want %v", got, tc.strings)
			}
			for i := range got {
				if got[i] != tc.strings[i] {
					t.Errorf("Strings = %v, want %v", got, tc.strings)
				}
			}
		})
	}
}

func TestResolve_NilUserSkipsQuery(t *testing.T) {
	repo := &fakeRepo{roles: []Role{Admin}}
	r := NewResolver(repo)

	set, err := r.Resolve(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 0 || repo.calls != 0 {
		t.Errorf("expected empty set and no query, got %v / %d calls", set, repo.calls)
	}
}

func TestResolve_PropagatesError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	r := NewResolver(repo)

	if _, err := r.Resolve(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}

func TestActor(t *testing.T) {
	repo := &fakeRepo{roles: []Role{Barbeiro}}
	a, err := NewResolver(repo).Actor(context.Background(), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if !a.Authenticated() || !a.IsStaff() || a.IsAdmin() {
		t.Errorf("unexpected actor %+v", a)
	}

	var anon Actor
	if anon.Authenticated() || anon.IsStaff() {
		t.Error("anonymous actor must have no capabilities")
	}

	if _, ok := Parse("gerente"); ok {
		t.Error("unknown role parsed")
	}
}

func TestGuards(t *testing.T) {
	anon := Actor{}
	client := Actor{UserID: uuid.New(), Roles: NewSet(Cliente)}
	barber := Actor{UserID: uuid.New(), Roles: NewSet(Barbeiro)}
	admin := Actor{UserID: uuid.New(), Roles: NewSet(Admin)}

	cases := []struct {
		name string
		err  error
		code string
	}{
		{"anon auth", RequireAuth(anon), "login_required"},
		{"anon admin", RequireAdmin(anon), "login_required"},
		{"client staff", RequireStaff(client), "staff_only"},
		{"barber admin", RequireAdmin(barber), "admins_only"},
		{"barber staff", RequireStaff(barber), ""},
		{"admin admin", RequireAdmin(admin), ""},
	}
	for _, tc := range cases {
		if tc.code == "" {
			if tc.err != nil {
				t.Errorf("%s: unexpected %v", tc.name, tc.err)
			}
			continue
		}
		if !httperr.IsBusiness(tc.err, tc.code) {
			t.Errorf("%s: err = %v, want %s", tc.name, tc.err, tc.code)
		}
	}
}

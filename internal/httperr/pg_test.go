package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite text", errors.New("constraint failed: UNIQUE constraint failed: bookings.date, bookings.time (2067)"), true},
		{"other", errors.New("boom"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBusiness("slot_taken"))
	if !IsBusiness(err, "slot_taken") {
		t.Error("expected wrapped business error to match")
	}
	if IsBusiness(err, "other") {
		t.Error("expected code mismatch")
	}
	if code, ok := Code(err); !ok || code != "slot_taken" {
		t.Errorf("Code() = %q, %v", code, ok)
	}
}

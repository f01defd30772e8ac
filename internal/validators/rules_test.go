package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsPersonName(t *testing.T) {
	cases := map[string]bool{
		"João da Silva": true,
		"Zé":            true,
		"A":             false,
		"R2D2":          false,
		"":              false,
	}
	for in, want := range cases {
		if got := IsPersonName(in); got != want {
			t.Errorf("IsPersonName(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsBRPhone(t *testing.T) {
	cases := map[string]bool{
		"(11) 98765-4321": true,
		"11987654321":     true,
		"8765-4321":       true,
		"123":             false,
		"phone":           false,
	}
	for in, want := range cases {
		if got := IsBRPhone(in); got != want {
			t.Errorf("IsBRPhone(%q) = %v, want %v", in, got, want)
		}
	}
	if got := NormalizePhone("(11) 98765-4321"); got != "11987654321" {
		t.Errorf("NormalizePhone = %q", got)
	}
}

func TestDateAndTime(t *testing.T) {
	if !IsHHMM("09:30") || IsHHMM("9:30") || IsHHMM("24:00") {
		t.Error("IsHHMM mismatch")
	}
	if !IsISODate("2025-06-10") || IsISODate("10/06/2025") || IsISODate("2025-02-30") {
		t.Error("IsISODate mismatch")
	}
}

type contactForm struct {
	Name  string `validate:"required,person_name"`
	Phone string `validate:"required,br_phone"`
}

func TestFirstMessage(t *testing.T) {
	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatal(err)
	}

	err := v.Struct(contactForm{Name: "Ana", Phone: "12"})
	if got := FirstMessage(err); got != "Telefone inválido" {
		t.Errorf("FirstMessage = %q", got)
	}

	if err := v.Struct(contactForm{Name: "Ana Lima", Phone: "11987654321"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEmailHelpers(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
	if got := LocalPart("barbeiro.joao@example.com"); got != "barbeiro.joao" {
		t.Errorf("LocalPart = %q", got)
	}
	if IsEmailDomainValid("no-at-sign") {
		t.Error("expected invalid")
	}
}

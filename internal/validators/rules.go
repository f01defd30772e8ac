package validators

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	personNameRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	brPhoneRe    = regexp.MustCompile(`^(\(?\d{2}\)?\s?)?\d{4,5}-?\d{4}$`)
)

// Register installs the custom rules on gin's binding engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"person_name": func(fl validator.FieldLevel) bool { return IsPersonName(fl.Field().String()) },
		"br_phone":    func(fl validator.FieldLevel) bool { return IsBRPhone(fl.Field().String()) },
		"hhmm":        func(fl validator.FieldLevel) bool { return IsHHMM(fl.Field().String()) },
		"iso_date":    func(fl validator.FieldLevel) bool { return IsISODate(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// IsPersonName accepts 2 to 100 letters and spaces, accented latin included.
func IsPersonName(s string) bool {
	s = strings.TrimSpace(s)
	n := len([]rune(s))
	if n < 2 || n > 100 {
		return false
	}
	return personNameRe.MatchString(s)
}

func IsBRPhone(s string) bool {
	return brPhoneRe.MatchString(strings.TrimSpace(s))
}

// NormalizePhone keeps only the digits.
func NormalizePhone(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func IsHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func IsISODate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

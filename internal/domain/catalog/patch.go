package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

// ServicePatch carries a partial update. Nil fields are left untouched.
type ServicePatch struct {
	Name            *string
	Category        *string
	Price           *decimal.Decimal
	DurationMinutes *int
	Active          *bool
	ImageURL        *string
}

func (p ServicePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.ErrBusiness("invalid_name")
	}
	if p.Price != nil {
		if err := ValidatePrice(*p.Price); err != nil {
			return err
		}
	}
	if p.DurationMinutes != nil {
		if err := ValidateDuration(*p.DurationMinutes); err != nil {
			return err
		}
	}
	return nil
}

func (p ServicePatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		fields["category"] = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		fields["price"] = p.Price.Round(2)
	}
	if p.DurationMinutes != nil {
		fields["duration_minutes"] = *p.DurationMinutes
	}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	return fields
}

func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return httperr.ErrBusiness("invalid_price")
	}
	return nil
}

// ValidateDuration accepts 1 minute up to 8 hours.
func ValidateDuration(minutes int) error {
	if minutes <= 0 || minutes > 480 {
		return httperr.ErrBusiness("invalid_duration")
	}
	return nil
}

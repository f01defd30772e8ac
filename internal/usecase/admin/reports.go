package admin

import (
	"context"
	"io"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	"github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/export"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

// AuditReader lists stored audit logs.
type AuditReader interface {
	List(ctx context.Context, f audit.Filter) (*audit.Page, error)
}

type Reports struct {
	bookings booking.Repository
	logs     AuditReader
}

func NewReports(bookings booking.Repository, logs AuditReader) *Reports {
	return &Reports{bookings: bookings, logs: logs}
}

// ExportBookings writes the bookings between from and to (inclusive, both
// optional) as an xlsx workbook. Staff only.
func (uc *Reports) ExportBookings(
	ctx context.Context,
	actor roles.Actor,
	from string,
	to string,
	w io.Writer,
) error {

	if err := roles.RequireStaff(actor); err != nil {
		return err
	}

	for _, d := range []string{from, to} {
		if d != "" && !validators.IsISODate(d) {
			return httperr.ErrBusiness("invalid_date")
		}
	}
	if from != "" && to != "" && from > to {
		return httperr.ErrBusiness("invalid_period")
	}

	list, err := uc.bookings.ListBetween(ctx, from, to)
	if err != nil {
		return err
	}

	return export.WriteBookings(w, from, to, booking.ToViews(list))
}

func (uc *Reports) AuditLogs(
	ctx context.Context,
	actor roles.Actor,
	f audit.Filter,
) (*audit.Page, error) {

	if err := roles.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.logs.List(ctx, f)
}

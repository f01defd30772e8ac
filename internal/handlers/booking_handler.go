package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/dto"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/admin"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create  *booking.CreateBooking
	list    *booking.ListBookings
	del     *booking.DeleteBooking
	reports *admin.Reports
}

func NewBookingHandler(
	create *booking.CreateBooking,
	list *booking.ListBookings,
	del *booking.DeleteBooking,
	reports *admin.Reports,
) *BookingHandler {
	return &BookingHandler{
		create:  create,
		list:    list,
		del:     del,
		reports: reports,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Name      string     `json:"name" binding:"required,person_name"`
	Phone     string     `json:"phone" binding:"required,br_phone"`
	Date      string     `json:"date" binding:"required,iso_date"`
	Time      string     `json:"time" binding:"required,hhmm"`
	ServiceID *uuid.UUID `json:"service_id"`
}

// ======================================================
// CLIENT
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bind(c, &req) {
		return
	}

	view, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), booking.CreateBookingInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "Agendamento realizado com sucesso!", view)
}

func (h *BookingHandler) Mine(c *gin.Context) {
	mine, err := h.list.Mine(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, mine)
}

func (h *BookingHandler) CancelMine(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.del.Mine(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Agendamento cancelado", nil)
}

// ======================================================
// STAFF
// ======================================================

func (h *BookingHandler) All(c *gin.Context) {
	views, err := h.list.All(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List(c, dto.FromBookingViews(views))
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.del.Any(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Agendamento cancelado", nil)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/admin/bookings/export?from=&to=
func (h *BookingHandler) Export(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	var buf bytes.Buffer
	if err := h.reports.ExportBookings(c.Request.Context(), middleware.ActorFrom(c), from, to, &buf); err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="agendamentos_%s_%s.xlsx"`, orAll(from), orAll(to)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func orAll(s string) string {
	if s == "" {
		return "todos"
	}
	return s
}

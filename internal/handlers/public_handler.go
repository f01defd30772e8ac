package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/catalog"
)

// PublicHandler serves the catalog and availability without a session.
type PublicHandler struct {
	services     *catalog.ServiceManager
	slots        *catalog.TimeSlotManager
	availability *booking.Availability
}

func NewPublicHandler(
	services *catalog.ServiceManager,
	slots *catalog.TimeSlotManager,
	availability *booking.Availability,
) *PublicHandler {
	return &PublicHandler{
		services:     services,
		slots:        slots,
		availability: availability,
	}
}

func (h *PublicHandler) Services(c *gin.Context) {
	list, err := h.services.List(c.Request.Context(), true)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List[models.Service](c, list)
}

func (h *PublicHandler) TimeSlots(c *gin.Context) {
	list, err := h.slots.List(c.Request.Context(), true)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List[models.TimeSlot](c, list)
}

// GET /api/availability?date=YYYY-MM-DD
func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_date", "Data inválida")
		return
	}

	day, err := h.availability.ForDate(c.Request.Context(), date)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, day)
}

// GET /api/calendar?from=YYYY-MM-DD&days=N
func (h *PublicHandler) Calendar(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	list, err := h.availability.Calendar(c.Query("from"), days)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, gin.H{"days": list})
}

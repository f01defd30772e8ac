package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/veve-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/media"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type AdminCatalogHandler struct {
	services *catalog.ServiceManager
	slots    *catalog.TimeSlotManager
}

func NewAdminCatalogHandler(
	services *catalog.ServiceManager,
	slots *catalog.TimeSlotManager,
) *AdminCatalogHandler {
	return &AdminCatalogHandler{services: services, slots: slots}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name            string           `json:"name" binding:"required,max=100"`
	Category        string           `json:"category" binding:"required,max=50"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	DurationMinutes int              `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=100"`
	Category        *string          `json:"category" binding:"omitempty,max=50"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Active          *bool            `json:"active"`
}

type CreateTimeSlotRequest struct {
	Time string `json:"time" binding:"required,hhmm"`
}

type UpdateTimeSlotRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *AdminCatalogHandler) ListServices(c *gin.Context) {
	list, err := h.services.List(c.Request.Context(), false)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List[models.Service](c, list)
}

func (h *AdminCatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bind(c, &req) {
		return
	}

	svc, err := h.services.Create(c.Request.Context(), middleware.ActorFrom(c), catalog.CreateServiceInput{
		Name:            req.Name,
		Category:        req.Category,
		Price:           *req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusCreated, "Serviço criado com sucesso!", svc)
}

func (h *AdminCatalogHandler) UpdateService(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bind(c, &req) {
		return
	}

	svc, err := h.services.Update(c.Request.Context(), middleware.ActorFrom(c), id, domain.ServicePatch{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Serviço atualizado com sucesso!", svc)
}

func (h *AdminCatalogHandler) ToggleService(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	svc, err := h.services.Toggle(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	message := "Serviço desativado"
	if svc.Active {
		message = "Serviço ativado"
	}
	httpresp.Message(c, http.StatusOK, message, svc)
}

func (h *AdminCatalogHandler) DeleteService(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Serviço excluído com sucesso!", nil)
}

// PUT /api/admin/services/:id/image (multipart field "image")
func (h *AdminCatalogHandler) UploadServiceImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUpload+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, httperr.ErrBusiness("image_too_large"))
			return
		}
		httperr.BadRequest(c, "invalid_request", "Envie a imagem no campo \"image\".")
		return
	}
	if fh.Size > media.MaxUpload {
		fail(c, httperr.ErrBusiness("image_too_large"))
		return
	}

	file, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer file.Close()

	svc, err := h.services.UploadImage(c.Request.Context(), middleware.ActorFrom(c), id, file)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Imagem atualizada com sucesso!", svc)
}

// ======================================================
// TIME SLOTS
// ======================================================

func (h *AdminCatalogHandler) ListTimeSlots(c *gin.Context) {
	list, err := h.slots.List(c.Request.Context(), false)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List[models.TimeSlot](c, list)
}

func (h *AdminCatalogHandler) CreateTimeSlot(c *gin.Context) {
	var req CreateTimeSlotRequest
	if !bind(c, &req) {
		return
	}

	slot, err := h.slots.Create(c.Request.Context(), middleware.ActorFrom(c), req.Time)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusCreated, "Horário criado com sucesso!", slot)
}

func (h *AdminCatalogHandler) UpdateTimeSlot(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTimeSlotRequest
	if !bind(c, &req) {
		return
	}

	slot, err := h.slots.SetAvailability(c.Request.Context(), middleware.ActorFrom(c), id, *req.IsAvailable)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Horário atualizado com sucesso!", slot)
}

func (h *AdminCatalogHandler) ToggleTimeSlot(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	slot, err := h.slots.Toggle(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Horário atualizado com sucesso!", slot)
}

func (h *AdminCatalogHandler) DeleteTimeSlot(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.slots.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Horário excluído com sucesso!", nil)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/booking"
)

// DraftHandler drives the step-by-step booking flow.
type DraftHandler struct {
	drafts *booking.Drafts
}

func NewDraftHandler(drafts *booking.Drafts) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

type chooseServiceRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
}

type chooseDateRequest struct {
	Date string `json:"date" binding:"required,iso_date"`
}

type chooseTimeRequest struct {
	Time string `json:"time" binding:"required,hhmm"`
}

// Both fields fall back to the profile values pre-filled on the draft.
type setContactRequest struct {
	Name  string `json:"name" binding:"omitempty,person_name"`
	Phone string `json:"phone" binding:"omitempty,br_phone"`
}

// loginRequiredResponse tells the client where to log in and resume.
type loginRequiredResponse struct {
	httperr.HTTPError
	DraftID  string `json:"draft_id"`
	LoginURL string `json:"login_url"`
}

func (h *DraftHandler) Start(c *gin.Context) {
	d, err := h.drafts.Start(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DraftHandler) Get(c *gin.Context) {
	d, err := h.drafts.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DraftHandler) ChooseService(c *gin.Context) {
	var req chooseServiceRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.drafts.ChooseService(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ServiceID)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DraftHandler) ChooseDate(c *gin.Context) {
	var req chooseDateRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.drafts.ChooseDate(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DraftHandler) ChooseTime(c *gin.Context) {
	var req chooseTimeRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.drafts.ChooseTime(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Time)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DraftHandler) SetContact(c *gin.Context) {
	var req setContactRequest
	if !bind(c, &req) {
		return
	}

	d, err := h.drafts.SetContact(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Name, req.Phone)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DraftHandler) Submit(c *gin.Context) {
	out, err := h.drafts.Submit(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), c.GetHeader("Origin"))

	var lr *booking.LoginRequiredError
	if errors.As(err, &lr) {
		_, message, _ := httperr.Lookup("login_required")
		c.JSON(http.StatusUnauthorized, loginRequiredResponse{
			HTTPError: httperr.HTTPError{Code: "login_required", Message: message},
			DraftID:   lr.DraftID,
			LoginURL:  lr.LoginURL,
		})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "Agendamento realizado com sucesso!", out)
}

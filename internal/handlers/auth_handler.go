package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/auth"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// --------- Requests ---------

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,person_name"`
	Phone    string `json:"phone" binding:"required,br_phone"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

type ConfirmResetRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type UpdatePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.svc.SignUp(c.Request.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "Cadastro realizado com sucesso!", session)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Login realizado com sucesso!", session)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		fail(c, httperr.ErrBusiness("login_required"))
		return
	}

	if err := h.svc.SignOut(c.Request.Context(), claims); err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Logout realizado com sucesso!", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Email, c.GetHeader("Origin")); err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Email de recuperação enviado! Verifique sua caixa de entrada.", nil)
}

func (h *AuthHandler) ConfirmReset(c *gin.Context) {
	var req ConfirmResetRequest
	if !bind(c, &req) {
		return
	}

	if err := h.svc.CompleteReset(c.Request.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Senha atualizada com sucesso!", nil)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if !bind(c, &req) {
		return
	}

	actor := middleware.ActorFrom(c)
	if err := h.svc.UpdatePassword(c.Request.Context(), actor.UserID, req.NewPassword, req.ConfirmPassword); err != nil {
		fail(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Senha atualizada com sucesso!", nil)
}

func (h *AuthHandler) Session(c *gin.Context) {
	info, err := h.svc.CurrentSession(c.Request.Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, info)
}

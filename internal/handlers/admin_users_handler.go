package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/admin"
)

type AdminUsersHandler struct {
	users *admin.Users
}

func NewAdminUsersHandler(users *admin.Users) *AdminUsersHandler {
	return &AdminUsersHandler{users: users}
}

// --------- Requests ---------

type ToggleAdminRequest struct {
	CurrentIsAdmin *bool `json:"current_is_admin" binding:"required"`
}

type PromoteUserRoleRequest struct {
	TargetUserEmail string `json:"target_user_email" binding:"required,email"`
	NewRole         string `json:"new_role" binding:"required,oneof=admin barbeiro"`
}

type CreateStaffRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin barbeiro"`
}

// --------- Handlers ---------

func (h *AdminUsersHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List[account.UserSummary](c, list)
}

func (h *AdminUsersHandler) ToggleAdmin(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ToggleAdminRequest
	if !bind(c, &req) {
		return
	}

	isAdmin, err := h.users.ToggleAdmin(c.Request.Context(), middleware.ActorFrom(c), id, *req.CurrentIsAdmin)
	if err != nil {
		fail(c, err)
		return
	}

	message := "Acesso de administrador removido"
	if isAdmin {
		message = "Usuário promovido a administrador"
	}
	httpresp.Message(c, http.StatusOK, message, gin.H{"user_id": id, "is_admin": isAdmin})
}

func (h *AdminUsersHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Usuário excluído com sucesso!", nil)
}

// POST /api/admin/rpc/promote_user_role
func (h *AdminUsersHandler) PromoteUserRole(c *gin.Context) {
	var req PromoteUserRoleRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.users.PromoteUserRole(c.Request.Context(), middleware.ActorFrom(c), req.TargetUserEmail, req.NewRole)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *AdminUsersHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.users.CreateStaffUser(c.Request.Context(), middleware.ActorFrom(c), admin.CreateStaffInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.Message(c, http.StatusCreated, res.Message, res)
}

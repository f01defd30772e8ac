package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	"github.com/BruksfildServices01/veve-booking/internal/httpresp"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/admin"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reports *admin.Reports
}

func NewAuditLogsHandler(reports *admin.Reports) *AuditLogsHandler {
	return &AuditLogsHandler{reports: reports}
}

// GET /api/admin/audit-logs?action=&entity=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Período (datas inválidas são ignoradas)
	// --------------------------------------------------

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		f.To = &to
	}

	res, err := h.reports.AuditLogs(c.Request.Context(), middleware.ActorFrom(c), f)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, res)
}

package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB and by a small redis adapter.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db        Pinger
	redis     Pinger
	startTime time.Time
	version   string
}

// NewHealthHandler accepts a nil redis when the service runs on in-memory stores.
func NewHealthHandler(db Pinger, redis Pinger) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		db:        db,
		redis:     redis,
		startTime: time.Now(),
		version:   version,
	}
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Live only confirms the process is running.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Ready checks the database and, when configured, redis.
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]Check{
		"database": h.check(c.Request.Context(), h.db, "Cannot connect to database"),
	}
	if h.redis != nil {
		checks["redis"] = h.check(c.Request.Context(), h.redis, "Cannot connect to Redis")
	}

	status, httpStatus := "UP", http.StatusOK
	for _, ch := range checks {
		if ch.Status != "UP" {
			status, httpStatus = "DOWN", http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	})
}

func (h *HealthHandler) check(ctx context.Context, p Pinger, message string) Check {
	if p == nil {
		return Check{Status: "DOWN", Message: "not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.PingContext(ctx); err != nil {
		return Check{Status: "DOWN", Message: message}
	}
	return Check{Status: "UP"}
}

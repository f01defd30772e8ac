package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
)

const keepAlive = 25 * time.Second

type Subscriber interface {
	Subscribe(f realtime.Filter) (<-chan realtime.Event, func())
}

// RealtimeHandler streams table changes as server-sent events.
type RealtimeHandler struct {
	hub Subscriber
}

func NewRealtimeHandler(hub Subscriber) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// scope narrows row-level tables to the caller's own rows unless the
// caller may see everyone's. mine=true always narrows.
func scope(actor roles.Actor, table string, mine bool) realtime.Filter {
	f := realtime.Filter{Table: table}

	own := mine
	switch table {
	case realtime.TableBookings:
		own = own || !actor.IsStaff()
	case realtime.TableProfiles, realtime.TableUserRoles:
		own = own || !actor.IsAdmin()
	}

	if own {
		f.UserID = actor.UserID.String()
	}
	return f
}

// GET /api/realtime/:table
func (h *RealtimeHandler) Stream(c *gin.Context) {
	table := c.Param("table")
	if !realtime.KnownTable(table) {
		httperr.NotFound(c, "unknown_channel", "Canal desconhecido.")
		return
	}

	f := scope(middleware.ActorFrom(c), table, c.Query("mine") == "true")

	events, unsubscribe := h.hub.Subscribe(f)
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.SSEvent("ready", gin.H{"table": table})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", e)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}

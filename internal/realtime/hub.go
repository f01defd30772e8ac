package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/veve-booking/internal/metrics"
)

// Tables that publish change events.
const (
	TableBookings  = "bookings"
	TableServices  = "services"
	TableTimeSlots = "time_slots"
	TableProfiles  = "profiles"
	TableUserRoles = "user_roles"
)

const (
	TypeInsert = "INSERT"
	TypeUpdate = "UPDATE"
	TypeDelete = "DELETE"
)

func KnownTable(name string) bool {
	switch name {
	case TableBookings, TableServices, TableTimeSlots, TableProfiles, TableUserRoles:
		return true
	}
	return false
}

type Event struct {
	Table  string    `json:"table"`
	Type   string    `json:"type"`
	ID     string    `json:"id"`
	UserID string    `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

// Filter selects events for one subscription. An empty UserID matches every row.
type Filter struct {
	Table  string
	UserID string
}

func (f Filter) match(e Event) bool {
	if f.Table != e.Table {
		return false
	}
	return f.UserID == "" || f.UserID == e.UserID
}

type Publisher interface {
	Publish(ctx context.Context, e Event)
}

type subscriber struct {
	filter Filter
	ch     chan Event
}

// Hub fans events out to local subscribers. Sends never block: a full
// subscriber buffer drops the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[uint64]*subscriber),
		buffer: buffer,
	}
}

// Subscribe returns the event channel and a function that tears it down.
func (h *Hub) Subscribe(f Filter) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	sub := &subscriber{filter: f, ch: make(chan Event, h.buffer)}
	h.subs[id] = sub
	metrics.AddRealtimeSubscribers(1)

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.ch)
			metrics.AddRealtimeSubscribers(-1)
		})
	}
}

func (h *Hub) Publish(ctx context.Context, e Event) {
	h.Deliver(e)
}

func (h *Hub) Deliver(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if !sub.filter.match(e) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			metrics.IncRealtimeDropped()
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

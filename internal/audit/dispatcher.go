package audit

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/metrics"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100), // buffer seguro
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch never blocks. A nil dispatcher discards the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		log.Println("audit queue full, dropping event")
		metrics.IncAsyncDropped("audit")
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

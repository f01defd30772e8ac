package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/BruksfildServices01/veve-booking/internal/metrics"
)

type Sender interface {
	Send(ctx context.Context, text string) error
}

// Dispatcher delivers staff notifications off the request path.
type Dispatcher struct {
	sender Sender
	queue  chan string
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan string, 50),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for text := range d.queue {
		if err := d.sender.Send(context.Background(), text); err != nil {
			log.Println("notify error:", err)
		}
	}
}

// Notify never blocks. A nil dispatcher discards the message.
func (d *Dispatcher) Notify(text string) {
	if d == nil {
		return
	}

	select {
	case d.queue <- text:
	default:
		log.Println("notify queue full, dropping message")
		metrics.IncAsyncDropped("notify")
	}
}

func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// BookingCreated formats the staff message for a new booking.
func BookingCreated(name, phone, date, tm string, service *string) string {
	var b strings.Builder
	b.WriteString("📅 Novo agendamento\n")
	fmt.Fprintf(&b, "Cliente: %s\n", name)
	fmt.Fprintf(&b, "Telefone: %s\n", phone)
	fmt.Fprintf(&b, "Data: %s às %s", formatDate(date), tm)
	if service != nil && *service != "" {
		fmt.Fprintf(&b, "\nServiço: %s", *service)
	}
	return b.String()
}

func BookingCancelled(name, date, tm string) string {
	return fmt.Sprintf("❌ Agendamento cancelado\nCliente: %s\nData: %s às %s", name, formatDate(date), tm)
}

// formatDate turns YYYY-MM-DD into DD/MM/YYYY.
func formatDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

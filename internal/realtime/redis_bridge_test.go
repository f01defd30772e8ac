package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/veve-booking/internal/config"
)

type fakePublisher struct {
	messages []string
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.messages = append(f.messages, message.(string))
	cmd.SetVal(1)
	return cmd
}

func TestRedisBridge_PublishDeliversLocallyAndRelays(t *testing.T) {
	hub := NewHub(4)
	pub := &fakePublisher{}
	b := newBridge(hub, pub, config.NewCircuitBreaker("test"))

	ch, stop := hub.Subscribe(Filter{Table: TableBookings})
	defer stop()

	b.Publish(context.Background(), Event{Table: TableBookings, ID: "b1"})

	if e, ok := receive(t, ch); !ok || e.ID != "b1" {
		t.Fatalf("local delivery = %+v, %v", e, ok)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("relayed = %d", len(pub.messages))
	}

	// own messages coming back from redis are ignored
	b.handle(pub.messages[0])
	if _, ok := receive(t, ch); ok {
		t.Error("own relayed event delivered twice")
	}
}

func TestRedisBridge_RemoteEventsAreDelivered(t *testing.T) {
	hub := NewHub(4)
	b := newBridge(hub, &fakePublisher{}, config.NewCircuitBreaker("test"))

	ch, stop := hub.Subscribe(Filter{Table: TableServices})
	defer stop()

	payload, _ := json.Marshal(envelope{Origin: "other-instance", Event: Event{Table: TableServices, ID: "s1"}})
	b.handle(string(payload))
	b.handle("not json")

	if e, ok := receive(t, ch); !ok || e.ID != "s1" {
		t.Errorf("remote delivery = %+v, %v", e, ok)
	}
}

func TestRedisBridge_RelayFailureKeepsLocalDelivery(t *testing.T) {
	hub := NewHub(8)
	b := newBridge(hub, &fakePublisher{err: errors.New("redis down")}, config.NewCircuitBreaker("test"))

	ch, stop := hub.Subscribe(Filter{Table: TableBookings})
	defer stop()

	for i := 0; i < 5; i++ {
		b.Publish(context.Background(), Event{Table: TableBookings})
	}
	if len(ch) != 5 {
		t.Errorf("local events = %d, want 5", len(ch))
	}
}

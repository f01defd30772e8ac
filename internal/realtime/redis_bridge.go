package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const redisChannel = "veve:realtime"

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type envelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

// RedisBridge delivers events locally and relays them to other instances
// through redis pub/sub. Redis failures never block local delivery.
type RedisBridge struct {
	hub    *Hub
	client publishClient
	sub    *redis.Client
	cb     *gobreaker.CircuitBreaker
	origin string
}

func NewRedisBridge(hub *Hub, client *redis.Client, cb *gobreaker.CircuitBreaker) *RedisBridge {
	b := newBridge(hub, client, cb)
	b.sub = client
	return b
}

func newBridge(hub *Hub, client publishClient, cb *gobreaker.CircuitBreaker) *RedisBridge {
	return &RedisBridge{
		hub:    hub,
		client: client,
		cb:     cb,
		origin: uuid.NewString(),
	}
}

func (b *RedisBridge) Publish(ctx context.Context, e Event) {
	b.hub.Deliver(e)

	payload, err := json.Marshal(envelope{Origin: b.origin, Event: e})
	if err != nil {
		log.Println("realtime encode error:", err)
		return
	}

	_, err = b.cb.Execute(func() (interface{}, error) {
		return nil, b.client.Publish(ctx, redisChannel, string(payload)).Err()
	})
	if err != nil {
		log.Println("realtime relay error:", err)
	}
}

// Run consumes events from other instances until ctx is done.
func (b *RedisBridge) Run(ctx context.Context) {
	if b.sub == nil {
		return
	}

	ps := b.sub.Subscribe(ctx, redisChannel)
	defer ps.Close()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.handle(msg.Payload)
		}
	}
}

func (b *RedisBridge) handle(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		log.Println("realtime decode error:", err)
		return
	}
	if env.Origin == b.origin {
		return
	}
	b.hub.Deliver(env.Event)
}

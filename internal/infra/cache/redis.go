package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the subset of redis commands the stores use.
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: 10,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Pinger adapts a client to health checks.
type Pinger struct {
	client *redis.Client
}

func NewPinger(client *redis.Client) Pinger {
	return Pinger{client: client}
}

func (p Pinger) PingContext(ctx context.Context) error {
	return Ping(ctx, p.client)
}

const (
	keyRevoked = "veve:revoked:"
	keyReset   = "veve:reset:"
	keyDraft   = "veve:draft:"
)

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

type RedisTokenStore struct {
	client Client
}

func NewRedisTokenStore(client Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

var _ account.TokenStore = (*RedisTokenStore)(nil)

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyRevoked+jti, "1", ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, keyRevoked+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) SaveReset(
	ctx context.Context,
	token string,
	userID uuid.UUID,
	ttl time.Duration,
) error {
	return s.client.Set(ctx, keyReset+token, userID.String(), ttl).Err()
}

func (s *RedisTokenStore) ConsumeReset(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.GetDel(ctx, keyReset+token).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, httperr.ErrBusiness("invalid_reset_token")
	}
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, httperr.ErrBusiness("invalid_reset_token")
	}
	return id, nil
}

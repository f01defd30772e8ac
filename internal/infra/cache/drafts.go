package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

type RedisDraftStore struct {
	client Client
}

func NewRedisDraftStore(client Client) *RedisDraftStore {
	return &RedisDraftStore{client: client}
}

var _ booking.DraftStore = (*RedisDraftStore)(nil)

// Save refreshes the TTL on every write.
func (s *RedisDraftStore) Save(ctx context.Context, d *booking.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyDraft+d.ID, string(b), booking.DraftTTL).Err()
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*booking.Draft, error) {
	val, err := s.client.Get(ctx, keyDraft+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, httperr.ErrBusiness("draft_not_found")
	}
	if err != nil {
		return nil, err
	}

	var d booking.Draft
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyDraft+id).Err()
}

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// ttlMap is used when redis is not configured. Single instance only.
type ttlMap struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func newTTLMap() *ttlMap {
	return &ttlMap{data: make(map[string]entry), now: time.Now}
}

func (m *ttlMap) set(key string, v any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	e := entry{value: v}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = e
}

func (m *ttlMap) get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok || e.expired(m.now()) {
		delete(m.data, key)
		return nil, false
	}
	return e.value, true
}

func (m *ttlMap) take(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	delete(m.data, key)
	if !ok || e.expired(m.now()) {
		return nil, false
	}
	return e.value, true
}

func (m *ttlMap) del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// sweep drops expired entries. Caller holds mu.
func (m *ttlMap) sweep() {
	now := m.now()
	for k, e := range m.data {
		if e.expired(now) {
			delete(m.data, k)
		}
	}
}

// ===============================
// Tokens
// ===============================

type MemoryTokenStore struct {
	m *ttlMap
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{m: newTTLMap()}
}

var _ account.TokenStore = (*MemoryTokenStore)(nil)

func (s *MemoryTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		s.m.set(keyRevoked+jti, true, ttl)
	}
	return nil
}

func (s *MemoryTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := s.m.get(keyRevoked + jti)
	return ok, nil
}

func (s *MemoryTokenStore) SaveReset(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.m.set(keyReset+token, userID, ttl)
	return nil
}

func (s *MemoryTokenStore) ConsumeReset(ctx context.Context, token string) (uuid.UUID, error) {
	v, ok := s.m.take(keyReset + token)
	if !ok {
		return uuid.Nil, httperr.ErrBusiness("invalid_reset_token")
	}
	return v.(uuid.UUID), nil
}

// ===============================
// Drafts
// ===============================

type MemoryDraftStore struct {
	m *ttlMap
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{m: newTTLMap()}
}

var _ booking.DraftStore = (*MemoryDraftStore)(nil)

func (s *MemoryDraftStore) Save(ctx context.Context, d *booking.Draft) error {
	cp := *d
	s.m.set(keyDraft+d.ID, cp, booking.DraftTTL)
	return nil
}

func (s *MemoryDraftStore) Get(ctx context.Context, id string) (*booking.Draft, error) {
	v, ok := s.m.get(keyDraft + id)
	if !ok {
		return nil, httperr.ErrBusiness("draft_not_found")
	}
	d := v.(booking.Draft)
	return &d, nil
}

func (s *MemoryDraftStore) Delete(ctx context.Context, id string) error {
	s.m.del(keyDraft + id)
	return nil
}

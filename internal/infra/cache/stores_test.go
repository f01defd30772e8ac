package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
)

func tokenStores() map[string]account.TokenStore {
	return map[string]account.TokenStore{
		"redis":  NewRedisTokenStore(newMockRedis()),
		"memory": NewMemoryTokenStore(),
	}
}

func draftStores() map[string]booking.DraftStore {
	return map[string]booking.DraftStore{
		"redis":  NewRedisDraftStore(newMockRedis()),
		"memory": NewMemoryDraftStore(),
	}
}

func TestTokenStore_Revocation(t *testing.T) {
	for name, s := range tokenStores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if revoked, _ := s.IsRevoked(ctx, "jti-1"); revoked {
				t.Fatal("fresh token reported revoked")
			}
			if err := s.Revoke(ctx, "jti-1", time.Hour); err != nil {
				t.Fatal(err)
			}
			revoked, err := s.IsRevoked(ctx, "jti-1")
			if err != nil || !revoked {
				t.Fatalf("IsRevoked = %v, %v", revoked, err)
			}
		})
	}
}

func TestTokenStore_ResetIsOneTime(t *testing.T) {
	for name, s := range tokenStores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := uuid.New()

			if err := s.SaveReset(ctx, "tok", user, time.Hour); err != nil {
				t.Fatal(err)
			}

			got, err := s.ConsumeReset(ctx, "tok")
			if err != nil || got != user {
				t.Fatalf("ConsumeReset = %v, %v", got, err)
			}

			if _, err := s.ConsumeReset(ctx, "tok"); !httperr.IsBusiness(err, "invalid_reset_token") {
				t.Errorf("second consume = %v", err)
			}
		})
	}
}

func TestTokenStore_ConcurrentResetRedeemsOnce(t *testing.T) {
	for name, s := range tokenStores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.SaveReset(ctx, "tok", uuid.New(), time.Hour); err != nil {
				t.Fatal(err)
			}

			var (
				wg   sync.WaitGroup
				mu   sync.Mutex
				wins int
			)
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := s.ConsumeReset(ctx, "tok"); err == nil {
						mu.Lock()
						wins++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			if wins != 1 {
				t.Fatalf("token redeemed %d times", wins)
			}
		})
	}
}

func TestDraftStore_RoundTrip(t *testing.T) {
	for name, s := range draftStores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			d := booking.NewDraft(time.Now())
			if err := d.ChooseService(uuid.New(), time.Now()); err != nil {
				t.Fatal(err)
			}
			if err := s.Save(ctx, d); err != nil {
				t.Fatal(err)
			}

			got, err := s.Get(ctx, d.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.State != booking.StateServiceChosen || *got.ServiceID != *d.ServiceID {
				t.Errorf("draft = %+v", got)
			}

			if err := s.Delete(ctx, d.ID); err != nil {
				t.Fatal(err)
			}
			if _, err := s.Get(ctx, d.ID); !httperr.IsBusiness(err, "draft_not_found") {
				t.Errorf("after delete: %v", err)
			}
		})
	}
}

func TestRedisDraftStore_SetsTTL(t *testing.T) {
	client := newMockRedis()
	s := NewRedisDraftStore(client)

	d := booking.NewDraft(time.Now())
	if err := s.Save(context.Background(), d); err != nil {
		t.Fatal(err)
	}

	if ttl := client.ttl(keyDraft + d.ID); ttl <= 23*time.Hour {
		t.Errorf("ttl = %v, want about 24h", ttl)
	}
}

func TestRedisStores_PropagateErrors(t *testing.T) {
	client := newMockRedis()
	client.ExistsError = errors.New("connection refused")
	client.GetError = errors.New("connection refused")

	if _, err := NewRedisTokenStore(client).IsRevoked(context.Background(), "x"); err == nil {
		t.Error("expected IsRevoked error")
	}
	if _, err := NewRedisTokenStore(client).ConsumeReset(context.Background(), "x"); err == nil || httperr.IsBusiness(err, "invalid_reset_token") {
		t.Errorf("expected infra error from ConsumeReset, got %v", err)
	}
	if _, err := NewRedisDraftStore(client).Get(context.Background(), "x"); err == nil || httperr.IsBusiness(err, "draft_not_found") {
		t.Errorf("expected infra error, got %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryTokenStore()
	base := time.Now()
	s.m.now = func() time.Time { return base }

	if err := s.SaveReset(context.Background(), "tok", uuid.New(), time.Minute); err != nil {
		t.Fatal(err)
	}

	s.m.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.ConsumeReset(context.Background(), "tok"); !httperr.IsBusiness(err, "invalid_reset_token") {
		t.Errorf("expired token consumed: %v", err)
	}
}

package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const ResetTokenTTL = time.Hour

// TokenStore tracks revoked session ids and one-time reset tokens.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)

	SaveReset(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error

	// ConsumeReset returns the owner and invalidates the token.
	ConsumeReset(ctx context.Context, token string) (uuid.UUID, error)
}

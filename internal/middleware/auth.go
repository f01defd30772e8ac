package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/usecase/auth"
)

const (
	ContextActor  = "actor"
	ContextClaims = "claims"
)

type TokenParser interface {
	ParseToken(ctx context.Context, raw string) (*auth.Claims, error)
}

type ActorResolver interface {
	Actor(ctx context.Context, userID uuid.UUID) (roles.Actor, error)
}

// Authenticator validates bearer tokens and resolves the caller's roles once per request.
type Authenticator struct {
	tokens   TokenParser
	resolver ActorResolver
}

func NewAuthenticator(tokens TokenParser, resolver ActorResolver) *Authenticator {
	return &Authenticator{tokens: tokens, resolver: resolver}
}

// Required rejects requests without a valid session.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, httperr.ErrBusiness("missing_authorization_header"), "", "")
			return
		}

		if err := a.authenticate(c, authHeader); err != nil {
			httperr.Abort(c, err, "failed_to_resolve_session", "Erro ao validar sessão.")
			return
		}

		c.Next()
	}
}

// Optional stores an Actor when a valid token is present and lets
// anonymous requests through. A broken token is still rejected.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if err := a.authenticate(c, authHeader); err != nil {
			httperr.Abort(c, err, "failed_to_resolve_session", "Erro ao validar sessão.")
			return
		}

		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context, authHeader string) error {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return httperr.ErrBusiness("invalid_authorization_header")
	}

	ctx := c.Request.Context()

	claims, err := a.tokens.ParseToken(ctx, strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}

	userID, err := claims.UserID()
	if err != nil {
		return httperr.ErrBusiness("invalid_token_payload")
	}

	actor, err := a.resolver.Actor(ctx, userID)
	if err != nil {
		return err
	}

	c.Set(ContextClaims, claims)
	c.Set(ContextActor, actor)
	return nil
}

// RequireStaff must run after Required.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := roles.RequireStaff(ActorFrom(c)); err != nil {
			httperr.Abort(c, err, "", "")
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after Required.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := roles.RequireAdmin(ActorFrom(c)); err != nil {
			httperr.Abort(c, err, "", "")
			return
		}
		c.Next()
	}
}

// ActorFrom returns the anonymous Actor when no session was resolved.
func ActorFrom(c *gin.Context) roles.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if a, ok := v.(roles.Actor); ok {
			return a
		}
	}
	return roles.Actor{}
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

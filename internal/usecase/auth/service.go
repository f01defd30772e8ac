package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/models"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

type Options struct {
	Secret  string
	SiteURL string

	// DomainCheck, when set, rejects sign-ups whose email domain cannot receive mail.
	DomainCheck func(email string) bool

	Now func() time.Time
}

// Service owns the session lifecycle: created on sign-in and sign-up,
// validated per request, revoked on sign-out.
type Service struct {
	repo   account.Repository
	tokens account.TokenStore
	mailer Mailer
	audit  *audit.Dispatcher

	secret      []byte
	siteURL     string
	domainCheck func(string) bool
	now         func() time.Time
}

func NewService(
	repo account.Repository,
	tokens account.TokenStore,
	mailer Mailer,
	dispatcher *audit.Dispatcher,
	opts Options,
) *Service {

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if mailer == nil {
		mailer = LogMailer{}
	}

	return &Service{
		repo:        repo,
		tokens:      tokens,
		mailer:      mailer,
		audit:       dispatcher,
		secret:      []byte(opts.Secret),
		siteURL:     strings.TrimRight(opts.SiteURL, "/"),
		domainCheck: opts.DomainCheck,
		now:         now,
	}
}

// --------- Types ---------

type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Roles    []string  `json:"roles"`
	IsAdmin  bool      `json:"is_admin"`
	IsStaff  bool      `json:"is_staff"`
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// --------- Sign in / up / out ---------

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	return s.session(ctx, user)
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	user, err := s.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.session(ctx, user)
}

// Register creates the user, its profile and the cliente role without opening a session.
func (s *Service) Register(ctx context.Context, in SignUpInput) (*models.User, error) {
	email := validators.NormalizeEmail(in.Email)

	if s.domainCheck != nil && !s.domainCheck(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	profile := &models.Profile{
		FullName: strings.TrimSpace(in.FullName),
		Phone:    validators.NormalizePhone(in.Phone),
	}

	if err := s.repo.CreateAccount(ctx, user, profile, roles.Cliente); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("email_already_registered")
		}
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_signed_up",
		Entity:   "user",
		EntityID: user.ID.String(),
	})

	return user, nil
}

func (s *Service) SignOut(ctx context.Context, claims *Claims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	return s.tokens.Revoke(ctx, claims.ID, ttl)
}

func (s *Service) session(ctx context.Context, user *models.User) (*Session, error) {
	token, exp, err := s.issue(user.ID)
	if err != nil {
		return nil, err
	}

	info, err := s.userInfo(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        *info,
	}, nil
}

// --------- Session ---------

func (s *Service) CurrentSession(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("login_required")
	}
	if err != nil {
		return nil, err
	}
	return s.userInfo(ctx, user)
}

func (s *Service) userInfo(ctx context.Context, user *models.User) (*UserInfo, error) {
	info := &UserInfo{ID: user.ID, Email: user.Email}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	switch {
	case err == nil:
		info.FullName = profile.FullName
		info.Phone = profile.Phone
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	set, err := roles.NewResolver(s.repo).Resolve(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	info.Roles = set.Strings()
	info.IsAdmin = set.IsAdmin()
	info.IsStaff = set.IsStaff()

	return info, nil
}

// --------- Passwords ---------

// ResetPassword reports success for unknown emails too.
func (s *Service) ResetPassword(ctx context.Context, email, origin string) error {
	email = validators.NormalizeEmail(email)

	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	if err := s.tokens.SaveReset(ctx, token, user.ID, account.ResetTokenTTL); err != nil {
		return err
	}

	link := RedirectBase(s.siteURL, origin) + "/reset-password?token=" + url.QueryEscape(token)
	// Same answer as an unknown email.
	if err := s.mailer.SendPasswordReset(ctx, email, link); err != nil {
		log.Printf("reset mail to %s failed: %v", email, err)
		return nil
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_reset_requested",
		Entity:   "user",
		EntityID: user.ID.String(),
	})
	return nil
}

func (s *Service) CompleteReset(ctx context.Context, token, password, confirm string) error {
	if err := checkNewPassword(password, confirm); err != nil {
		return err
	}

	userID, err := s.tokens.ConsumeReset(ctx, token)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, userID, password, "password_reset_completed")
}

func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, password, confirm string) error {
	if err := checkNewPassword(password, confirm); err != nil {
		return err
	}
	return s.setPassword(ctx, userID, password, "password_updated")
}

func (s *Service) setPassword(ctx context.Context, userID uuid.UUID, password, action string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordHash(ctx, userID, string(hashed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("invalid_reset_token")
		}
		return err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "user",
		EntityID: userID.String(),
	})
	return nil
}

const MinResetPasswordLength = 6

func checkNewPassword(password, confirm string) error {
	if len(password) < MinResetPasswordLength {
		return httperr.ErrBusiness("password_too_short")
	}
	if password != confirm {
		return httperr.ErrBusiness("password_mismatch")
	}
	return nil
}

// RedirectBase prefers the configured site URL over the caller's Origin.
func RedirectBase(siteURL, origin string) string {
	if siteURL != "" {
		return strings.TrimRight(siteURL, "/")
	}
	return strings.TrimRight(origin, "/")
}

func (s *Service) SiteURL(origin string) string {
	return RedirectBase(s.siteURL, origin)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

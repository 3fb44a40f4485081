package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/infra/cache"
	"github.com/tgcs/experience-api/internal/infra/mailer"
	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
	"github.com/tgcs/experience-api/internal/pkg/utils/secrets"
	"github.com/tgcs/experience-api/internal/pkg/utils/tokens"
	"github.com/tgcs/experience-api/internal/telemetry"
	"go.uber.org/zap"
)

// SessionStore is the subset of cache.SessionStore the auth flow uses.
type SessionStore interface {
	Create(ctx context.Context, email string) (string, error)
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type MailPublisher interface {
	PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error
}

// Session is a started login. Cookie is the signed value to hand to the
// client.
type Session struct {
	Cookie  string
	Email   string
	IsAdmin bool
	TTL     time.Duration
}

// Principal is the caller behind a session cookie.
type Principal struct {
	SessionID string
	Email     string
	IsAdmin   bool
}

type AuthService interface {
	// LoginWithGoogle verifies a Google ID token and starts a session for an
	// admin email.
	LoginWithGoogle(ctx context.Context, credential string) (*Session, error)
	// LoginWithToken starts a session for an emailed access token. The
	// token's access window starts at its first use.
	LoginWithToken(ctx context.Context, email, token string) (*Session, error)
	Logout(ctx context.Context, cookie string) error
	Authenticate(ctx context.Context, cookie string) (*Principal, error)
	// CreateUser issues a fresh access token for email and queues it for
	// delivery.
	CreateUser(ctx context.Context, email string) error
}

type authService struct {
	logins    repo.LoginRepo
	sessions  SessionStore
	verifier  IDTokenVerifier
	publisher MailPublisher
	cfg       *config.Config
	log       *zap.Logger
	now       func() time.Time
}

func NewAuthService(logins repo.LoginRepo, sessions SessionStore, verifier IDTokenVerifier, publisher MailPublisher, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{
		logins:    logins,
		sessions:  sessions,
		verifier:  verifier,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) startSession(ctx context.Context, email string, isAdmin bool) (*Session, error) {
	id, err := s.sessions.Create(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &Session{
		Cookie:  tokens.Sign(s.cfg.Auth.SecretPepper, id),
		Email:   email,
		IsAdmin: isAdmin,
		TTL:     s.sessions.TTL(),
	}, nil
}

func (s *authService) LoginWithGoogle(ctx context.Context, credential string) (sess *Session, err error) {
	defer func() { telemetry.RecordLogin("google", err) }()

	claims, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(claims.Email)

	admin, err := s.logins.IsAdmin(ctx, email)
	if err != nil {
		return nil, err
	}
	if !admin {
		s.log.Warn("google login for non-admin", zap.String("email", email))
		return nil, ErrForbidden
	}
	return s.startSession(ctx, email, true)
}

func (s *authService) LoginWithToken(ctx context.Context, email, token string) (sess *Session, err error) {
	defer func() { telemetry.RecordLogin("token", err) }()

	email = normalizeEmail(email)

	login, err := s.logins.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	ok, err := secrets.VerifySecret(token, s.cfg.Auth.SecretPepper, login.Hash)
	if err != nil {
		s.log.Error("stored login hash is unreadable", zap.String("email", email), zap.Error(err))
		return nil, ErrInvalidToken
	}
	if !ok {
		return nil, ErrInvalidToken
	}

	now := s.now()
	switch {
	case login.Expiration == nil:
		exp := now.Add(time.Duration(s.cfg.Auth.TokenTTLSec) * time.Second).Unix()
		if err := s.logins.UpdateExpiration(ctx, email, exp); err != nil {
			return nil, err
		}
	case login.Expired(now):
		if err := s.logins.Delete(ctx, email); err != nil {
			s.log.Warn("failed to remove expired login", zap.String("email", email), zap.Error(err))
		}
		return nil, ErrTokenExpired
	}

	admin, err := s.logins.IsAdmin(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, email, admin)
}

func (s *authService) Logout(ctx context.Context, cookie string) error {
	id, ok := tokens.Unsign(s.cfg.Auth.SecretPepper, cookie)
	if !ok {
		return ErrUnauthorized
	}
	return s.sessions.Delete(ctx, id)
}

func (s *authService) Authenticate(ctx context.Context, cookie string) (*Principal, error) {
	id, ok := tokens.Unsign(s.cfg.Auth.SecretPepper, cookie)
	if !ok {
		return nil, ErrUnauthorized
	}

	email, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	admin, err := s.logins.IsAdmin(ctx, email)
	if err != nil {
		return nil, err
	}
	return &Principal{SessionID: id, Email: email, IsAdmin: admin}, nil
}

func (s *authService) CreateUser(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if s.publisher == nil {
		return ErrMailNotAvailable
	}

	token, err := tokens.Generate(tokens.AccessTokenPrefix)
	if err != nil {
		return err
	}
	hash, err := secrets.HashSecret(token, s.cfg.Auth.SecretPepper)
	if err != nil {
		return err
	}

	if err := s.logins.Upsert(ctx, &model.Login{Email: email, Hash: hash}); err != nil {
		return err
	}

	job := mailer.Job{
		To:      email,
		Subject: "Your experience catalogue access token",
		Body:    accessTokenBody(token, time.Duration(s.cfg.Auth.TokenTTLSec)*time.Second, s.cfg.Auth.LoginRedirectURL),
	}
	if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.ExchangeName, s.cfg.RabbitMQ.RoutingKey, job); err != nil {
		return fmt.Errorf("queue access token mail: %w", err)
	}
	s.log.Info("access token issued", zap.String("email", email))
	return nil
}

func accessTokenBody(token string, window time.Duration, loginURL string) string {
	var b strings.Builder
	b.WriteString("Your access token is:\n\n")
	b.WriteString(token)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("It stays valid for %s after you first sign in with it.\n", window))
	if loginURL != "" {
		b.WriteString("Sign in at " + loginURL + "\n")
	}
	return b.String()
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// GoogleClaims are the ID token claims the login flow reads.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleClaims, error)
}

// KeySet resolves the signing key of a parsed token.
type KeySet interface {
	Keyfunc(token *jwt.Token) (any, error)
}

// loadRetryInterval bounds how often a failed key set load is retried.
const loadRetryInterval = time.Minute

// remoteKeySet loads Google's JWK set on first use. Once loaded, keyfunc
// refreshes it in the background and rate limits refetches for unknown key
// ids.
type remoteKeySet struct {
	load func(ctx context.Context) (keyfunc.Keyfunc, error)
	now  func() time.Time

	mu         sync.Mutex
	keys       keyfunc.Keyfunc
	lastErr    error
	lastFailed time.Time
}

func newRemoteKeySet(ctx context.Context, certsURL string) *remoteKeySet {
	return &remoteKeySet{
		load: func(context.Context) (keyfunc.Keyfunc, error) {
			return keyfunc.NewDefaultCtx(ctx, []string{certsURL})
		},
		now: time.Now,
	}
}

func (r *remoteKeySet) get(ctx context.Context) (keyfunc.Keyfunc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.keys != nil {
		return r.keys, nil
	}
	if r.lastErr != nil && r.now().Sub(r.lastFailed) < loadRetryInterval {
		return nil, r.lastErr
	}

	keys, err := r.load(ctx)
	if err != nil {
		r.lastErr = fmt.Errorf("load google certs: %w", err)
		r.lastFailed = r.now()
		return nil, r.lastErr
	}
	r.keys, r.lastErr = keys, nil
	return keys, nil
}

type googleVerifier struct {
	clientID string
	keys     func(ctx context.Context) (KeySet, error)
	now      func() time.Time
}

// NewGoogleVerifier verifies Google ID tokens against the key set published
// at certsURL. ctx bounds the background key refresh.
func NewGoogleVerifier(ctx context.Context, clientID, certsURL string) IDTokenVerifier {
	remote := newRemoteKeySet(ctx, certsURL)
	return newGoogleVerifier(clientID, func(ctx context.Context) (KeySet, error) {
		return remote.get(ctx)
	})
}

func newGoogleVerifier(clientID string, keys func(ctx context.Context) (KeySet, error)) *googleVerifier {
	return &googleVerifier{clientID: clientID, keys: keys, now: time.Now}
}

func (v *googleVerifier) Verify(ctx context.Context, credential string) (*GoogleClaims, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("%w: google client id is not configured", ErrInvalidIDToken)
	}
	keys, err := v.keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	claims := &GoogleClaims{}
	_, err = jwt.ParseWithClaims(credential, claims, keys.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if !googleIssuers[claims.Issuer] {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIDToken, claims.Issuer)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidIDToken)
	}
	return claims, nil
}

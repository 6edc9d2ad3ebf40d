// Package auth verifies session tokens issued by the hosted identity
// provider. Sessions are RS256 signed JWTs whose subject is the user id;
// they arrive in the session cookie set by the provider's browser SDK or as
// a bearer token.
package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultSessionCookie = "__session"
	DefaultLeeway        = 5 * time.Second
)

var (
	// ErrInvalidToken is returned for tokens that fail signature or claim checks.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrUnauthorizedParty is returned when the token was minted for an origin that is not allowed.
	ErrUnauthorizedParty = errors.New("unauthorized party")
	// ErrInvalidPublishableKey is returned when a publishable key cannot be decoded.
	ErrInvalidPublishableKey = errors.New("invalid publishable key")
)

// Claims are the session token claims the application relies on.
type Claims struct {
	jwt.RegisteredClaims
	SessionID       string `json:"sid,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
}

// UserID returns the identity provider's id of the signed-in user.
func (c *Claims) UserID() string {
	return c.Subject
}

type Option func(*Verifier)

// WithAuthorizedParties restricts accepted tokens to the given azp origins.
func WithAuthorizedParties(parties ...string) Option {
	return func(v *Verifier) {
		v.parties = parties
	}
}

// WithLeeway sets the allowed clock skew for time based claims.
func WithLeeway(d time.Duration) Option {
	return func(v *Verifier) {
		v.leeway = d
	}
}

// WithTimeFunc overrides the clock used to validate time based claims.
func WithTimeFunc(now func() time.Time) Option {
	return func(v *Verifier) {
		v.now = now
	}
}

type Verifier struct {
	key     *rsa.PublicKey
	parties []string
	leeway  time.Duration
	now     func() time.Time
}

// NewVerifier creates a Verifier from the provider's PEM encoded public key.
func NewVerifier(publicKeyPEM string, opts ...Option) (*Verifier, error) {
	const op = "auth.NewVerifier"

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse public key: %w", op, err)
	}

	v := &Verifier{
		key:    key,
		leeway: DefaultLeeway,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Verify checks the token signature and claims and returns the claims.
func (v *Verifier) Verify(token string) (*Claims, error) {
	const op = "auth.Verifier.Verify"

	claims := new(Claims)

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w: missing subject", op, ErrInvalidToken)
	}

	// azp is only present for tokens minted in a browser; backend issued tokens omit it.
	if len(v.parties) > 0 && claims.AuthorizedParty != "" && !slices.Contains(v.parties, claims.AuthorizedParty) {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnauthorizedParty, claims.AuthorizedParty)
	}

	return claims, nil
}

// FrontendAPI decodes the provider's frontend API host from a publishable key
// of the form pk_test_<base64(host$)> or pk_live_<base64(host$)>.
func FrontendAPI(publishableKey string) (string, error) {
	const op = "auth.FrontendAPI"

	var encoded string
	switch {
	case strings.HasPrefix(publishableKey, "pk_test_"):
		encoded = strings.TrimPrefix(publishableKey, "pk_test_")
	case strings.HasPrefix(publishableKey, "pk_live_"):
		encoded = strings.TrimPrefix(publishableKey, "pk_live_")
	default:
		return "", fmt.Errorf("%s: %w: unknown prefix", op, ErrInvalidPublishableKey)
	}

	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrInvalidPublishableKey, err)
	}

	host, ok := strings.CutSuffix(string(decoded), "$")
	if !ok || host == "" {
		return "", fmt.Errorf("%s: %w: missing terminator", op, ErrInvalidPublishableKey)
	}

	return host, nil
}

// Package auth verifies bearer tokens and carries the current user id in the
// request context. Accounts and sign-in live elsewhere; this package only
// consumes the tokens they issue.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KirkDiggler/rpg-forge/internal/errors"
	"github.com/KirkDiggler/rpg-forge/internal/pkg/clock"
)

const minSecretLength = 32

// Config holds the verifier settings
type Config struct {
	Secret string
	// Issuer is checked when set
	Issuer string
	Clock  clock.Clock
}

// Validate ensures the secret is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Secret", c.Secret, vb)
	if c.Secret != "" && len(c.Secret) < minSecretLength {
		vb.Fieldf("Secret", "must be at least %d characters", minSecretLength)
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Clock == nil {
		c.Clock = clock.New()
	}
	return nil
}

// Verifier checks HS256 tokens
type Verifier struct {
	secret []byte
	issuer string
	clock  clock.Clock
}

// NewVerifier creates a verifier
func NewVerifier(cfg *Config) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid auth config")
	}

	return &Verifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		clock:  cfg.Clock,
	}, nil
}

// Verify parses a token and returns its subject as the user id
func (v *Verifier) Verify(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", mapJWTError(err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.Unauthenticated("token has no subject")
	}
	return claims.Subject, nil
}

// Issue signs a token for userID. The server never issues tokens; the CLI
// and tests use this.
func (v *Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.InvalidArgument("user ID is required")
	}

	now := v.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.WrapWithCode(err, errors.CodeUnauthenticated, "token expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.WrapWithCode(err, errors.CodeUnauthenticated, "invalid token signature")
	default:
		return errors.WrapWithCode(err, errors.CodeUnauthenticated, "invalid token")
	}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type userIDKey struct{}

// WithUserID stores the current user id
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the current user id, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

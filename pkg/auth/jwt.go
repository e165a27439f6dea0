package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type (
	Claims struct {
		jwt.RegisteredClaims
		Username string   `json:"username"`
		Roles    []string `json:"roles,omitempty"`
	}

	// JWTCodec issues and verifies HS256 access tokens.
	JWTCodec struct {
		secret []byte
		issuer string
		ttl    time.Duration
		now    func() time.Time
	}

	JWTCodecOption func(*JWTCodec)
)

func NewJWTCodec(secret []byte, issuer string, ttl time.Duration, opts ...JWTCodecOption) *JWTCodec {
	c := &JWTCodec{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func WithJWTClock(now func() time.Time) JWTCodecOption {
	return func(c *JWTCodec) {
		c.now = now
	}
}

func (c *JWTCodec) Issue(subject, username string, roles []string) (string, time.Time, error) {
	issuedAt := c.now()
	expiresAt := issuedAt.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
		Roles:    roles,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies the token; invalid and expired tokens are reported as ErrUnauthenticated.
func (c *JWTCodec) Parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: token expired", ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return &claims, nil
}

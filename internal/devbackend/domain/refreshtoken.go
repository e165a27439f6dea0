package domain

import (
	"context"
	"errors"
	"time"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type (
	RefreshToken struct {
		Value     string
		UserID    UserID
		ExpiresAt time.Time
	}

	RefreshTokenRepo interface {
		Store(ctx context.Context, token RefreshToken) error
		// Take removes the token and returns it, so a token is exchanged at most once.
		Take(ctx context.Context, value string) (*RefreshToken, error)
		DeleteExpired(ctx context.Context, now time.Time) (int, error)
	}
)

func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

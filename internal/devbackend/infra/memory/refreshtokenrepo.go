package memory

import (
	"context"
	"sync"
	"time"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
)

type refreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]domain.RefreshToken
}

func NewRefreshTokenRepo() domain.RefreshTokenRepo {
	return &refreshTokenRepo{tokens: make(map[string]domain.RefreshToken)}
}

func (r *refreshTokenRepo) Store(_ context.Context, token domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token.Value] = token
	return nil
}

func (r *refreshTokenRepo) Take(_ context.Context, value string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[value]
	if !ok {
		return nil, domain.ErrRefreshTokenNotFound
	}
	delete(r.tokens, value)
	return &token, nil
}

func (r *refreshTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int
	for value, token := range r.tokens {
		if token.IsExpired(now) {
			delete(r.tokens, value)
			deleted++
		}
	}
	return deleted, nil
}

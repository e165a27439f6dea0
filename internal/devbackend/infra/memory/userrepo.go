package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
)

type userRepo struct {
	mu    sync.RWMutex
	users map[domain.UserID]domain.User
}

func NewUserRepo() domain.UserRepo {
	return &userRepo{users: make(map[domain.UserID]domain.User)}
}

func (r *userRepo) FindByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *cloneUser(user))
	}
	slices.SortFunc(result, func(a, b domain.User) int {
		return strings.Compare(a.Username, b.Username)
	})
	return result, nil
}

func (r *userRepo) Store(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *cloneUser(*user)
	return nil
}

func cloneUser(user domain.User) *domain.User {
	user.PasswordHash = slices.Clone(user.PasswordHash)
	user.Roles = slices.Clone(user.Roles)
	return &user
}

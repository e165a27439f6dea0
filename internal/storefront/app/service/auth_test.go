package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	storefrontbackendmock "github.com/klwxsrx/go-storefront/internal/storefront/app/backend/mock"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/log"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

var testUser = domain.User{
	ID:       "4f6a1c2e-5d4e-4c8b-9a51-7f0d3b8e2c11",
	Username: "alice",
	Email:    "alice@example.com",
	Roles:    []string{"customer"},
}

func newManager(store session.Store) session.Manager {
	return session.NewManager(store, session.RefresherFunc(func(context.Context) (session.Token, error) {
		return "", errors.New("refresh is not expected")
	}))
}

func TestAuth_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		api      func(ctrl *gomock.Controller) backend.AuthAPI
		expect   func(t *testing.T, store session.Store, user *domain.User, err error)
	}{
		{
			name:     "success_starts_session",
			username: "alice",
			password: "secret",
			api: func(ctrl *gomock.Controller) backend.AuthAPI {
				mock := storefrontbackendmock.NewAuthAPI(ctrl)
				mock.EXPECT().Login(gomock.Any(), "alice", "secret").
					Return(&backend.LoginResult{Token: "access-1", User: testUser}, nil)
				return mock
			},
			expect: func(t *testing.T, store session.Store, user *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, testUser, *user)

				token, err := store.Token(context.Background())
				require.NoError(t, err)
				assert.Equal(t, session.Token("access-1"), token)

				identity, err := store.Identity(context.Background())
				require.NoError(t, err)
				require.NotNil(t, identity)
				assert.Equal(t, "alice", identity.Username)
				assert.Equal(t, []string{"customer"}, identity.Roles)
			},
		},
		{
			name:     "invalid_credentials_when_backend_rejects",
			username: "alice",
			password: "wrong",
			api: func(ctrl *gomock.Controller) backend.AuthAPI {
				mock := storefrontbackendmock.NewAuthAPI(ctrl)
				mock.EXPECT().Login(gomock.Any(), "alice", "wrong").
					Return(nil, &backend.Error{StatusCode: 401, Message: "invalid credentials"})
				return mock
			},
			expect: func(t *testing.T, store session.Store, _ *domain.User, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidCredentials)
				assert.ErrorIs(t, err, backend.ErrUnauthorized)

				token, tokenErr := store.Token(context.Background())
				require.NoError(t, tokenErr)
				assert.Empty(t, token)
			},
		},
		{
			name: "invalid_credentials_when_empty",
			api: func(ctrl *gomock.Controller) backend.AuthAPI {
				return storefrontbackendmock.NewAuthAPI(ctrl)
			},
			expect: func(t *testing.T, _ session.Store, _ *domain.User, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidCredentials)
			},
		},
		{
			name:     "error_when_backend_fails",
			username: "alice",
			password: "secret",
			api: func(ctrl *gomock.Controller) backend.AuthAPI {
				mock := storefrontbackendmock.NewAuthAPI(ctrl)
				mock.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("unexpected"))
				return mock
			},
			expect: func(t *testing.T, _ session.Store, _ *domain.User, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := session.NewMemoryStore()
			auth := service.NewAuth(tt.api(ctrl), newManager(store), log.NewStub())

			user, err := auth.Login(context.Background(), tt.username, tt.password)
			tt.expect(t, store, user, err)
		})
	}
}

func TestAuth_Logout_ClearsSessionRegardlessOfBackend(t *testing.T) {
	tests := []struct {
		name   string
		apiErr error
	}{
		{name: "backend_success"},
		{name: "backend_unauthorized", apiErr: &backend.Error{StatusCode: 401}},
		{name: "backend_unavailable", apiErr: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			store := session.NewMemoryStore()
			manager := newManager(store)
			require.NoError(t, manager.Start(ctx, "access-1", &session.Identity{ID: testUser.ID, Username: "alice"}))

			api := storefrontbackendmock.NewAuthAPI(ctrl)
			api.EXPECT().Logout(gomock.Any()).Return(tt.apiErr)

			err := service.NewAuth(api, manager, log.NewStub()).Logout(ctx)
			require.NoError(t, err)

			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			identity, err := store.Identity(ctx)
			require.NoError(t, err)
			assert.Nil(t, identity)
		})
	}
}

func TestAuth_CurrentUser(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := session.NewMemoryStore()
	manager := newManager(store)
	auth := service.NewAuth(storefrontbackendmock.NewAuthAPI(ctrl), manager, log.NewStub())

	_, err := auth.CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)

	require.NoError(t, manager.Start(ctx, "access-1", &session.Identity{
		ID:       testUser.ID,
		Username: testUser.Username,
		Email:    testUser.Email,
		Roles:    testUser.Roles,
	}))

	user, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUser, *user)
}

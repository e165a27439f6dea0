package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	storefrontbackendmock "github.com/klwxsrx/go-storefront/internal/storefront/app/backend/mock"
	"github.com/klwxsrx/go-storefront/internal/storefront/app/service"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/auth"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

func TestAdmin_RequiresAdminRole(t *testing.T) {
	tests := []struct {
		name      string
		identity  *session.Identity
		expectErr error
	}{
		{
			name:      "anonymous",
			expectErr: service.ErrNotLoggedIn,
		},
		{
			name:      "customer",
			identity:  &session.Identity{ID: "1", Username: "alice", Roles: []string{"customer"}},
			expectErr: auth.ErrPermissionDenied,
		},
		{
			name:     "admin",
			identity: &session.Identity{ID: "2", Username: "root", Roles: []string{"customer", domain.RoleAdmin}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			manager := newManager(session.NewMemoryStore())
			if tt.identity != nil {
				require.NoError(t, manager.Start(ctx, "access-1", tt.identity))
			}

			account := storefrontbackendmock.NewAccountAPI(ctrl)
			if tt.expectErr == nil {
				account.EXPECT().ListUsers(gomock.Any()).Return([]domain.User{testUser}, nil)
			}

			users, err := service.NewAdmin(storefrontbackendmock.NewCatalogAPI(ctrl), account, manager).ListUsers(ctx)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []domain.User{testUser}, users)
		})
	}
}

func TestAdmin_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	manager := newManager(session.NewMemoryStore())
	require.NoError(t, manager.Start(ctx, "access-1", &session.Identity{ID: "2", Username: "root", Roles: []string{domain.RoleAdmin}}))

	price := int64(3999)
	catalog := storefrontbackendmock.NewCatalogAPI(ctrl)
	catalog.EXPECT().GetProduct(gomock.Any(), keyboard.ID).Return(&keyboard, nil)
	catalog.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p domain.Product) (*domain.Product, error) {
		assert.Equal(t, keyboard.ID, p.ID)
		assert.Equal(t, keyboard.Name, p.Name)
		assert.Equal(t, price, p.PriceCents)
		return &p, nil
	})

	admin := service.NewAdmin(catalog, storefrontbackendmock.NewAccountAPI(ctrl), manager)
	updated, err := admin.UpdateProduct(ctx, keyboard.ID, domain.ProductUpdate{PriceCents: &price})
	require.NoError(t, err)
	assert.Equal(t, price, updated.PriceCents)

	negative := -1
	_, err = admin.UpdateProduct(ctx, keyboard.ID, domain.ProductUpdate{Stock: &negative})
	assert.Error(t, err)
}

func TestAdmin_CreateProduct_Validates(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	manager := newManager(session.NewMemoryStore())
	require.NoError(t, manager.Start(ctx, "access-1", &session.Identity{ID: "2", Username: "root", Roles: []string{domain.RoleAdmin}}))

	_, err := service.NewAdmin(storefrontbackendmock.NewCatalogAPI(ctrl), storefrontbackendmock.NewAccountAPI(ctrl), manager).
		CreateProduct(ctx, domain.Product{Name: " ", PriceCents: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

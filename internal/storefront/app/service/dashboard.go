package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
	"github.com/klwxsrx/go-storefront/pkg/worker"
)

const (
	DashboardSectionProfile  = "profile"
	DashboardSectionOrders   = "orders"
	DashboardSectionProducts = "products"
)

type (
	// DashboardData holds whatever sections loaded; Failures is keyed by section name.
	DashboardData struct {
		Profile  *domain.Profile
		Orders   []domain.Order
		Products []domain.Product
		Failures map[string]error
	}

	Dashboard interface {
		Load(ctx context.Context) (*DashboardData, error)
	}

	dashboardService struct {
		account backend.AccountAPI
		orders  backend.OrderAPI
		catalog backend.CatalogAPI
	}
)

func NewDashboard(account backend.AccountAPI, orders backend.OrderAPI, catalog backend.CatalogAPI) Dashboard {
	return dashboardService{
		account: account,
		orders:  orders,
		catalog: catalog,
	}
}

// Load requests all sections at once, so an expired token is refreshed a single time for all of them.
func (s dashboardService) Load(ctx context.Context) (*DashboardData, error) {
	var mu sync.Mutex
	data := &DashboardData{Failures: make(map[string]error)}
	fail := func(section string, err error) error {
		mu.Lock()
		defer mu.Unlock()
		data.Failures[section] = err
		return err
	}

	group := worker.NewFailSafeGroup(ctx)
	group.Do(func(ctx context.Context) error {
		profile, err := s.account.GetProfile(ctx)
		if err != nil {
			return fail(DashboardSectionProfile, err)
		}
		data.Profile = profile
		return nil
	})
	group.Do(func(ctx context.Context) error {
		orders, err := s.orders.ListOrders(ctx)
		if err != nil {
			return fail(DashboardSectionOrders, err)
		}
		data.Orders = orders
		return nil
	})
	group.Do(func(ctx context.Context) error {
		products, err := s.catalog.ListProducts(ctx)
		if err != nil {
			return fail(DashboardSectionProducts, err)
		}
		data.Products = products
		return nil
	})
	_ = group.Wait()

	if len(data.Failures) == 3 {
		return nil, fmt.Errorf("load dashboard: %w", errors.Join(
			data.Failures[DashboardSectionProfile],
			data.Failures[DashboardSectionOrders],
			data.Failures[DashboardSectionProducts],
		))
	}

	return data, nil
}

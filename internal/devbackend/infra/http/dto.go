package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/service"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
)

type (
	loginIn struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	loginOut struct {
		AccessToken string  `json:"access_token"`
		User        userOut `json:"user"`
	}

	refreshOut struct {
		AccessToken string `json:"access_token"`
	}

	userOut struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
		Email    string    `json:"email"`
		Roles    []string  `json:"roles"`
	}

	productData struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		PriceCents  int64     `json:"price_cents"`
		Stock       int       `json:"stock"`
	}

	orderItemIn struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}

	createOrderIn struct {
		Items []orderItemIn `json:"items"`
	}

	orderLineOut struct {
		ProductID      uuid.UUID `json:"product_id"`
		Name           string    `json:"name"`
		UnitPriceCents int64     `json:"unit_price_cents"`
		Quantity       int       `json:"quantity"`
	}

	orderOut struct {
		ID         uuid.UUID      `json:"id"`
		Status     string         `json:"status"`
		Items      []orderLineOut `json:"items"`
		TotalCents int64          `json:"total_cents"`
		CreatedAt  time.Time      `json:"created_at"`
	}

	profileData struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Address  string `json:"address"`
	}
)

func toUserOut(user domain.User) userOut {
	return userOut{
		ID:       user.ID.UUID,
		Username: user.Username,
		Email:    user.Profile.Email,
		Roles:    user.Roles,
	}
}

func toProductData(product domain.Product) productData {
	return productData{
		ID:          product.ID.UUID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		PriceCents:  product.PriceCents,
		Stock:       product.Stock,
	}
}

func (d productData) toServiceData() service.ProductData {
	return service.ProductData{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		PriceCents:  d.PriceCents,
		Stock:       d.Stock,
	}
}

func (in createOrderIn) toReservations() []domain.StockReservation {
	result := make([]domain.StockReservation, 0, len(in.Items))
	for _, item := range in.Items {
		result = append(result, domain.StockReservation{
			ProductID: domain.ProductID{UUID: item.ProductID},
			Quantity:  item.Quantity,
		})
	}
	return result
}

func toOrderOut(order domain.Order) orderOut {
	items := make([]orderLineOut, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderLineOut{
			ProductID:      item.ProductID.UUID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	return orderOut{
		ID:         order.ID.UUID,
		Status:     string(order.Status),
		Items:      items,
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
	}
}

func toProfileData(profile domain.Profile) profileData {
	return profileData(profile)
}

func (d profileData) toDomain() domain.Profile {
	return domain.Profile(d)
}

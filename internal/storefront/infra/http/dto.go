package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/storefront/app/backend"
	"github.com/klwxsrx/go-storefront/internal/storefront/domain"
)

type (
	LoginIn struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginOut struct {
		AccessToken string  `json:"access_token"`
		User        UserOut `json:"user"`
	}

	RefreshOut struct {
		AccessToken string `json:"access_token"`
	}

	UserOut struct {
		ID       string   `json:"id"`
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Roles    []string `json:"roles"`
	}

	ProductData struct {
		ID          uuid.UUID `json:"id,omitempty"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		PriceCents  int64     `json:"price_cents"`
		Stock       int       `json:"stock"`
	}

	OrderItemIn struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}

	CreateOrderIn struct {
		Items []OrderItemIn `json:"items"`
	}

	OrderLineOut struct {
		ProductID      uuid.UUID `json:"product_id"`
		Name           string    `json:"name"`
		UnitPriceCents int64     `json:"unit_price_cents"`
		Quantity       int       `json:"quantity"`
	}

	OrderOut struct {
		ID         uuid.UUID      `json:"id"`
		Status     string         `json:"status"`
		Items      []OrderLineOut `json:"items"`
		TotalCents int64          `json:"total_cents"`
		CreatedAt  time.Time      `json:"created_at"`
	}

	ProfileData struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Address  string `json:"address"`
	}

	ErrorOut struct {
		Message string `json:"message"`
	}
)

func toDomainUser(out UserOut) domain.User {
	return domain.User{
		ID:       out.ID,
		Username: out.Username,
		Email:    out.Email,
		Roles:    out.Roles,
	}
}

func toDomainProduct(data ProductData) domain.Product {
	return domain.Product{
		ID:          domain.ProductID{UUID: data.ID},
		Name:        data.Name,
		Description: data.Description,
		Category:    data.Category,
		PriceCents:  data.PriceCents,
		Stock:       data.Stock,
	}
}

func toProductData(product domain.Product) ProductData {
	return ProductData{
		ID:          product.ID.UUID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		PriceCents:  product.PriceCents,
		Stock:       product.Stock,
	}
}

func toDomainOrder(out OrderOut) domain.Order {
	lines := make([]domain.OrderLine, 0, len(out.Items))
	for _, item := range out.Items {
		lines = append(lines, domain.OrderLine{
			ProductID:      domain.ProductID{UUID: item.ProductID},
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	return domain.Order{
		ID:         domain.OrderID{UUID: out.ID},
		Status:     domain.OrderStatus(out.Status),
		Lines:      lines,
		TotalCents: out.TotalCents,
		CreatedAt:  out.CreatedAt,
	}
}

func toCreateOrderIn(items []backend.OrderItem) CreateOrderIn {
	result := CreateOrderIn{Items: make([]OrderItemIn, 0, len(items))}
	for _, item := range items {
		result.Items = append(result.Items, OrderItemIn{
			ProductID: item.ProductID.UUID,
			Quantity:  item.Quantity,
		})
	}
	return result
}

func toDomainProfile(data ProfileData) domain.Profile {
	return domain.Profile(data)
}

func toProfileData(profile domain.Profile) ProfileData {
	return ProfileData(profile)
}

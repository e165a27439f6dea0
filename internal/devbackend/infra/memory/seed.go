package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/klwxsrx/go-storefront/internal/devbackend/app/encoding"
	"github.com/klwxsrx/go-storefront/internal/devbackend/domain"
)

type SeedUser struct {
	Username string
	Password string
	Roles    []string
	Profile  domain.Profile
}

var (
	DemoUsers = []SeedUser{
		{
			Username: "alice",
			Password: "alice-password",
			Roles:    []string{domain.RoleCustomer},
			Profile:  domain.Profile{FullName: "Alice Liddell", Email: "alice@example.com", Address: "12 Rabbit Hole Lane"},
		},
		{
			Username: "admin",
			Password: "admin-password",
			Roles:    []string{domain.RoleCustomer, domain.RoleAdmin},
			Profile:  domain.Profile{FullName: "Store Admin", Email: "admin@example.com"},
		},
	}

	DemoProducts = []domain.Product{
		{Name: "Mechanical Keyboard", Description: "Tenkeyless, brown switches", Category: "peripherals", PriceCents: 8999, Stock: 15},
		{Name: "Wireless Mouse", Description: "Ergonomic, USB receiver", Category: "peripherals", PriceCents: 2499, Stock: 40},
		{Name: "27\" Monitor", Description: "1440p IPS panel", Category: "displays", PriceCents: 27999, Stock: 6},
		{Name: "USB-C Cable", Description: "2 m braided cable", Category: "accessories", PriceCents: 999, Stock: 120},
		{Name: "Laptop Stand", Description: "Aluminium, adjustable height", Category: "accessories", PriceCents: 3499, Stock: 0},
	}
)

func Seed(
	ctx context.Context,
	users domain.UserRepo,
	products domain.ProductRepo,
	passwordEncoder encoding.PasswordEncoder,
	seedUsers []SeedUser,
	seedProducts []domain.Product,
) error {
	for _, seedUser := range seedUsers {
		hash, err := passwordEncoder.HashPassword(seedUser.Password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", seedUser.Username, err)
		}

		err = users.Store(ctx, &domain.User{
			ID:           domain.UserID{UUID: uuid.New()},
			Username:     seedUser.Username,
			PasswordHash: hash,
			Roles:        seedUser.Roles,
			Profile:      seedUser.Profile,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", seedUser.Username, err)
		}
	}

	for _, product := range seedProducts {
		if product.ID.UUID == uuid.Nil {
			product.ID = domain.ProductID{UUID: uuid.New()}
		}

		err := products.Store(ctx, &product)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", product.Name, err)
		}
	}

	return nil
}

package domain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidProduct = errors.New("invalid product")

type (
	ProductID struct{ uuid.UUID }

	Product struct {
		ID          ProductID
		Name        string
		Description string
		Category    string
		PriceCents  int64
		Stock       int
	}

	ProductSort string

	ProductFilter struct {
		Category      string
		Query         string
		MinPriceCents *int64
		MaxPriceCents *int64
		InStockOnly   bool
		Sort          ProductSort
	}
)

const (
	ProductSortNone      ProductSort = ""
	ProductSortName      ProductSort = "name"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
)

func ParseProductID(value string) (ProductID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return ProductID{}, fmt.Errorf("parse product id %q: %w", value, err)
	}
	return ProductID{id}, nil
}

func ParseProductSort(value string) (ProductSort, error) {
	switch sort := ProductSort(strings.ToLower(strings.TrimSpace(value))); sort {
	case ProductSortNone, ProductSortName, ProductSortPriceAsc, ProductSortPriceDesc:
		return sort, nil
	default:
		return ProductSortNone, fmt.Errorf("unknown product sort %q", value)
	}
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// Validate checks fields an administrator may set.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name must be not empty", ErrInvalidProduct)
	case p.PriceCents < 0:
		return fmt.Errorf("%w: price must be not negative", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must be not negative", ErrInvalidProduct)
	default:
		return nil
	}
}

func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.Query != "" {
		query := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), query) && !strings.Contains(strings.ToLower(p.Description), query) {
			return false
		}
	}
	if f.MinPriceCents != nil && p.PriceCents < *f.MinPriceCents {
		return false
	}
	if f.MaxPriceCents != nil && p.PriceCents > *f.MaxPriceCents {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	return true
}

// Apply returns the matching products in the requested order; the input is not modified.
func (f ProductFilter) Apply(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			result = append(result, p)
		}
	}

	switch f.Sort {
	case ProductSortName:
		slices.SortStableFunc(result, func(a, b Product) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case ProductSortPriceAsc:
		slices.SortStableFunc(result, func(a, b Product) int {
			return cmp.Compare(a.PriceCents, b.PriceCents)
		})
	case ProductSortPriceDesc:
		slices.SortStableFunc(result, func(a, b Product) int {
			return cmp.Compare(b.PriceCents, a.PriceCents)
		})
	}

	return result
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseCents reads a decimal amount such as "12", "12.5" or "12.50".
func ParseCents(value string) (int64, error) {
	value = strings.TrimSpace(value)
	whole, fraction, hasFraction := strings.Cut(value, ".")
	if whole == "" || (hasFraction && (fraction == "" || len(fraction) > 2)) {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidProduct, value)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidProduct, value)
	}

	var cents int64
	if hasFraction {
		if len(fraction) == 1 {
			fraction += "0"
		}
		cents, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("%w: amount %q", ErrInvalidProduct, value)
		}
	}

	return units*100 + cents, nil
}

// ProductUpdate changes only the fields that are set.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	PriceCents  *int64
	Stock       *int
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil && u.PriceCents == nil && u.Stock == nil
}

func (u ProductUpdate) ApplyTo(p Product) (Product, error) {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = strings.TrimSpace(*u.Category)
	}
	if u.PriceCents != nil {
		p.PriceCents = *u.PriceCents
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	return p, p.Validate()
}

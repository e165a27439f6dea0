package domain

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type (
	CartLine struct {
		ProductID      ProductID
		Name           string
		UnitPriceCents int64
		Quantity       int
	}

	// Cart is kept on the client until checkout.
	Cart struct {
		lines []CartLine
	}
)

func NewCart() *Cart {
	return &Cart{}
}

// Add puts quantity items of product into the cart, merging with an existing line.
func (c *Cart) Add(product Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	i := c.indexOf(product.ID)
	total := quantity
	if i >= 0 {
		total += c.lines[i].Quantity
	}
	if total > product.Stock {
		return fmt.Errorf("%w: %s has %d in stock, requested %d", ErrInsufficientStock, product.Name, product.Stock, total)
	}

	if i >= 0 {
		c.lines[i].Quantity = total
		c.lines[i].UnitPriceCents = product.PriceCents
		return nil
	}

	c.lines = append(c.lines, CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Quantity:       quantity,
	})
	return nil
}

// SetQuantity replaces the line quantity; zero removes the line.
func (c *Cart) SetQuantity(productID ProductID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	if quantity == 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
		return nil
	}

	c.lines[i].Quantity = quantity
	return nil
}

func (c *Cart) Remove(productID ProductID) {
	_ = c.SetQuantity(productID, 0)
}

func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.TotalCents()
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (l CartLine) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

func (c *Cart) indexOf(productID ProductID) int {
	return slices.IndexFunc(c.lines, func(line CartLine) bool {
		return line.ProductID == productID
	})
}

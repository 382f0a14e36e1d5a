package storeapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dragon98048/EverstMart/internal/domain/cart"
)

// Product is a catalog item as served by the storefront API.
type Product struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	Category     string
	ImageRef     string
	Unit         string
	UnitQuantity string
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category string
	Search   string
}

// CartProduct converts a catalog product into the shape the cart stores.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  p.ImageRef,
		UnitLabel: strings.TrimSpace(p.UnitQuantity + " " + p.Unit),
	}
}

// Profile is the authenticated user's profile as served by the API.
type Profile struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// OrderSummary is one entry of the user's order history.
type OrderSummary struct {
	ID          string
	TotalAmount decimal.Decimal
	ItemCount   int
	Status      string
	UpdatedAt   time.Time
}

// Package cart implements the client-side shopping cart: a set of line
// items keyed by product ID, persisted in durable key-value storage and
// broadcast to subscribers on every mutation.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when Add is called with a quantity below 1.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Product is the catalog information needed to add an item to the cart.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	UnitLabel string
}

// LineItem is one product's entry in the cart.
//
// Invariant: Quantity >= 1. An item whose quantity would drop below 1 is
// removed from the cart, never retained at zero.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageRef  string
	UnitLabel string
}

// Event describes a cart change. It carries the post-mutation totals so
// lightweight observers (a navigation badge) need not re-read the store.
type Event struct {
	TotalItems int
	TotalPrice decimal.Decimal
}

// TotalPrice sums unit price times quantity over items.
func TotalPrice(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItems sums the quantities of items.
func TotalItems(items []LineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

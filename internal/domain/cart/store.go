package cart

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dragon98048/EverstMart/internal/storage"
	"github.com/dragon98048/EverstMart/pkg/eventbus"
)

// StorageKey is the well-known key the serialized cart lives under.
const StorageKey = "cart"

// Store is the single source of truth for cart state. Every mutation writes
// the full cart back to storage and publishes an Event so all active views
// re-read and re-render.
//
// Mutations are serialized by an internal mutex. The broadcast reaches only
// subscribers in this process; another process sharing the same storage file
// observes changes on its next Load, not via the bus.
type Store struct {
	mu  sync.Mutex
	kv  storage.KV
	bus eventbus.Bus[Event]
	lg  *zap.Logger
}

// NewStore creates a cart Store over the given storage.
func NewStore(kv storage.KV, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{kv: kv, lg: lg}
}

// Subscribe registers fn for cart change events and returns its
// unsubscribe function.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Load reads the persisted cart. An absent or malformed value degrades to
// an empty cart; only storage access itself can fail.
func (s *Store) Load(ctx context.Context) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]LineItem, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, errors.Wrap(err, "read cart")
	}
	if !ok {
		return nil, nil
	}
	items, err := decodeItems(raw)
	if err != nil {
		s.lg.Warn("Discarding malformed cart state", zap.Error(err))
		return nil, nil
	}
	return items, nil
}

// Add merges a product into the cart: an existing line item's quantity is
// incremented by qty, otherwise a new line item is appended.
func (s *Store) Add(ctx context.Context, p Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	return s.mutate(ctx, func(items []LineItem) []LineItem {
		for i := range items {
			if items[i].ProductID == p.ID {
				items[i].Quantity += qty
				return items
			}
		}
		return append(items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  qty,
			ImageRef:  p.ImageRef,
			UnitLabel: p.UnitLabel,
		})
	})
}

// UpdateQuantity sets a line item's quantity to newQty exactly. A quantity
// below 1 removes the item instead.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, newQty int) error {
	if newQty < 1 {
		return s.Remove(ctx, productID)
	}
	return s.mutate(ctx, func(items []LineItem) []LineItem {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = newQty
				break
			}
		}
		return items
	})
}

// Remove deletes the matching line item. Removing an absent product is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, productID string) error {
	return s.mutate(ctx, func(items []LineItem) []LineItem {
		kept := items[:0]
		for _, item := range items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		return kept
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]LineItem) []LineItem {
		return nil
	})
}

// TotalPrice returns the sum of unit price times quantity over the
// current cart.
func (s *Store) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return TotalPrice(items), nil
}

// TotalItems returns the sum of quantities over the current cart.
func (s *Store) TotalItems(ctx context.Context) (int, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return TotalItems(items), nil
}

// mutate loads the cart, applies fn, persists the full result, and
// broadcasts the change. The event is published only after a successful
// write so observers never see state that was not persisted.
func (s *Store) mutate(ctx context.Context, fn func([]LineItem) []LineItem) error {
	s.mu.Lock()
	items, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	items = fn(items)
	if err := s.kv.Set(ctx, StorageKey, encodeItems(items)); err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "persist cart")
	}
	event := Event{TotalItems: TotalItems(items), TotalPrice: TotalPrice(items)}
	s.mu.Unlock()

	s.bus.Publish(event)
	return nil
}

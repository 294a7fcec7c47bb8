// Package cart implements the cart state machine as an explicit object over
// an injectable Store, instead of the ambient client-side singleton the web
// frontend used to carry.
package cart

import (
	"context"

	"github.com/google/uuid"
)

type Item struct {
	ProductID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  uint      `json:"quantity"`
}

// Store persists one cart per user. Put upserts an item with an absolute
// quantity; Remove is a no-op for absent entries.
type Store interface {
	Items(ctx context.Context, userID uuid.UUID) ([]Item, error)
	Get(ctx context.Context, userID, productID uuid.UUID) (*Item, error)
	Put(ctx context.Context, userID uuid.UUID, item Item) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type Cart struct {
	store  Store
	userID uuid.UUID
}

func New(store Store, userID uuid.UUID) *Cart {
	return &Cart{store: store, userID: userID}
}

// Add merges quantities for an existing product and inserts otherwise.
// A requested quantity below 1 counts as 1.
func (c *Cart) Add(ctx context.Context, item Item) (*Item, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	existing, err := c.store.Get(ctx, c.userID, item.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		item.Quantity += existing.Quantity
	}

	if err := c.store.Put(ctx, c.userID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Cart) Remove(ctx context.Context, productID uuid.UUID) error {
	return c.store.Remove(ctx, c.userID, productID)
}

// UpdateQuantity sets the absolute quantity. Quantities below 1 and unknown
// products are silent no-ops.
func (c *Cart) UpdateQuantity(ctx context.Context, productID uuid.UUID, qty uint) (*Item, error) {
	if qty < 1 {
		return c.store.Get(ctx, c.userID, productID)
	}

	existing, err := c.store.Get(ctx, c.userID, productID)
	if err != nil || existing == nil {
		return existing, err
	}

	existing.Quantity = qty
	if err := c.store.Put(ctx, c.userID, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (c *Cart) Items(ctx context.Context) ([]Item, error) {
	return c.store.Items(ctx, c.userID)
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.store.Clear(ctx, c.userID)
}

func (c *Cart) TotalPrice(ctx context.Context) (float64, error) {
	items, err := c.store.Items(ctx, c.userID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total, nil
}

package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByAccount finds the cart of an account, with items loaded
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart and replaces its items
	Save(ctx context.Context, cart *Cart) error

	// DeleteItems removes all items of a cart
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}

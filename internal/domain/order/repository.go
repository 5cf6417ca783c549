package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its ID, with items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForAccount finds an order by ID scoped to an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number, with items loaded
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAllForAccount lists the orders of an account.
	// Filter keys understood: status.
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountForAccount counts the orders of an account matching the filter
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// FindAll lists all orders (staff view)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts all orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save updates an order row (items are immutable after checkout)
	Save(ctx context.Context, order *Order) error

	// DeleteWithItems removes an order and its items in one transaction
	DeleteWithItems(ctx context.Context, id uuid.UUID) error

	// NextOrderNumber generates the next order number, e.g. "VC20260828-0042"
	NextOrderNumber(ctx context.Context) (string, error)
}

// StockChange pairs a product with a quantity to decrement (checkout) or
// restore (cancel)
type StockChange struct {
	ProductID uuid.UUID
	Quantity  int
}

// Checkout bundles everything the checkout transaction writes
type Checkout struct {
	Order *Order
	// NewAddress is inserted inside the transaction when the buyer supplied
	// a fresh shipping address instead of an existing address id
	NewAddress *identity.Address
	Decrements []StockChange
}

// CheckoutStore runs the multi-statement order transactions. All statements
// of one call share a single database transaction; any failure rolls the
// whole operation back.
type CheckoutStore interface {
	// CreateOrder inserts the optional new address, applies the guarded
	// stock decrements and inserts the order with its items.
	// Returns shared.ErrInsufficientStock when a decrement would drive a
	// product's stock negative.
	CreateOrder(ctx context.Context, checkout *Checkout) error

	// CancelOrder persists a cancelled order and restores stock
	CancelOrder(ctx context.Context, order *Order, restock []StockChange) error
}

package identity

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByIDForAccount finds an address by ID scoped to an account.
	// An address belonging to another account yields ErrNotFound.
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Address, error)

	// FindAllForAccount lists all addresses of an account, default first
	FindAllForAccount(ctx context.Context, accountID uuid.UUID) ([]Address, error)

	// CountForAccount counts the addresses of an account
	CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete removes an address scoped to an account
	Delete(ctx context.Context, accountID, id uuid.UUID) error

	// SetDefault marks one address as the account's default and clears the
	// flag on every other address of the same account, in one transaction
	SetDefault(ctx context.Context, accountID, id uuid.UUID) error
}

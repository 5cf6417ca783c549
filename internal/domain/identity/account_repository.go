package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/shared"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByEmail finds an account by its normalized email
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByGoogleID finds an account by its Google subject
	FindByGoogleID(ctx context.Context, googleID string) (*Account, error)

	// FindAll finds all accounts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)

	// Count counts accounts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error
}

package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	// FindByID finds a brand by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// FindByName finds a brand by its exact name
	FindByName(ctx context.Context, name string) (*Brand, error)

	// FindAll lists all brands ordered by name
	FindAll(ctx context.Context) ([]Brand, error)

	// Save creates or updates a brand
	Save(ctx context.Context, brand *Brand) error

	// Delete removes a brand. Implementations surface a referenced-rows
	// violation (products pointing at the brand) as shared.ErrReferenced.
	Delete(ctx context.Context, id uuid.UUID) error
}

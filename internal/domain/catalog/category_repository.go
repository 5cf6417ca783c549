package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll lists all categories ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// FindChildren lists the direct children of a category
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete removes a category. Implementations surface a referenced-rows
	// violation (children or products) as shared.ErrReferenced.
	Delete(ctx context.Context, id uuid.UUID) error
}

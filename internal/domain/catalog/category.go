package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/shared"
)

// Category represents a product category. Categories form a tree via
// ParentID; depth is unconstrained.
type Category struct {
	shared.BaseAggregateRoot
	Name     string     `gorm:"type:varchar(100);not null"`
	Slug     string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:char(36);index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category. The slug is derived from the folded name.
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Slug:              Slugify(name),
		ParentID:          parentID,
	}, nil
}

// Rename changes the category name and regenerates the slug
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Slug = Slugify(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetParent moves the category under a new parent. A category cannot be
// its own parent; cycle detection across the whole tree is done in the
// application service, which can see the siblings.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Slugify turns a display name into a URL slug, e.g. "Điện thoại" -> "dien-thoai"
func Slugify(name string) string {
	folded := Fold(name)
	var b strings.Builder
	lastDash := true
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

package catalog

import (
	"strings"
	"time"

	"github.com/vietcart/backend/internal/domain/shared"
)

// Brand represents a product brand
type Brand struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	LogoURL string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name, logoURL string) (*Brand, error) {
	if err := validateBrandName(name); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		LogoURL:           logoURL,
	}, nil
}

// Update changes the brand name and logo
func (b *Brand) Update(name, logoURL string) error {
	if err := validateBrandName(name); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.LogoURL = logoURL
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

func validateBrandName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	return nil
}

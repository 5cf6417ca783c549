package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vietcart/backend/internal/domain/catalog"
)

// CreateProductInput contains input for creating a product
type CreateProductInput struct {
	Code        string          `json:"code" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// UpdateProductInput contains input for updating a product
type UpdateProductInput struct {
	ProductID   uuid.UUID        `json:"-"`
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	BrandID     *uuid.UUID       `json:"brand_id"`
	CategoryID  *uuid.UUID       `json:"category_id"`
}

// ListProductsInput contains the storefront product listing parameters
type ListProductsInput struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID *uuid.UUID
	BrandID    *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	OrderBy    string
	OrderDir   string
	// IncludeInactive widens the listing to soft-deleted products (staff view)
	IncludeInactive bool
}

// ProductInfo is the product projection returned to clients
type ProductInfo struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BrandID     *uuid.UUID      `json:"brand_id,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Rating      decimal.Decimal `json:"rating"`
	ImageURL    string          `json:"image_url,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateCategoryInput contains input for creating a category
type CreateCategoryInput struct {
	Name     string     `json:"name" binding:"required,max=100"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryInput contains input for updating a category
type UpdateCategoryInput struct {
	CategoryID uuid.UUID  `json:"-"`
	Name       string     `json:"name" binding:"required,max=100"`
	ParentID   *uuid.UUID `json:"parent_id"`
}

// CategoryInfo is the category projection returned to clients
type CategoryInfo struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// CategoryNode is a category with its resolved children
type CategoryNode struct {
	CategoryInfo
	Children []CategoryNode `json:"children"`
}

// CreateBrandInput contains input for creating a brand
type CreateBrandInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	LogoURL string `json:"logo_url" binding:"omitempty,max=500"`
}

// UpdateBrandInput contains input for updating a brand
type UpdateBrandInput struct {
	BrandID uuid.UUID `json:"-"`
	Name    string    `json:"name" binding:"required,max=100"`
	LogoURL string    `json:"logo_url" binding:"omitempty,max=500"`
}

// BrandInfo is the brand projection returned to clients
type BrandInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL string    `json:"logo_url,omitempty"`
}

func toProductInfo(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCategoryInfo(c *catalog.Category) CategoryInfo {
	return CategoryInfo{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		ParentID: c.ParentID,
	}
}

func toBrandInfo(b *catalog.Brand) BrandInfo {
	return BrandInfo{
		ID:      b.ID,
		Name:    b.Name,
		LogoURL: b.LogoURL,
	}
}

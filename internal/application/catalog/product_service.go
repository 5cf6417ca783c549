package catalog

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ObjectStorage is the slice of blob storage the catalog needs for images
type ObjectStorage interface {
	// Upload stores the object under key and returns its public URL
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object under key
	Delete(ctx context.Context, key string) error
}

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	storage      ObjectStorage
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductInfo, error) {
	if existing, err := s.productRepo.FindByCode(ctx, input.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this code already exists")
	}

	product, err := catalog.NewProduct(input.Code, input.Name, valueobject.NewMoneyVND(input.Price), input.Quantity)
	if err != nil {
		return nil, err
	}
	product.Description = input.Description

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
		}
		product.SetCategory(input.CategoryID)
	}
	if input.BrandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *input.BrandID); err != nil {
			return nil, shared.NewDomainError("INVALID_BRAND", "Brand does not exist")
		}
		product.SetBrand(input.BrandID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))

	info := toProductInfo(product)
	return &info, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toProductInfo(product)
	return &info, nil
}

// GetByCode returns a product by its unique code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductInfo, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toProductInfo(product)
	return &info, nil
}

// List returns products matching the listing parameters. Vietnamese search
// terms match with or without diacritics.
func (s *ProductService) List(ctx context.Context, input ListProductsInput) (*shared.Paginated[ProductInfo], error) {
	filter := shared.Filter{
		Page:     input.Page,
		PageSize: input.PageSize,
		OrderBy:  input.OrderBy,
		OrderDir: input.OrderDir,
		Search:   catalog.Fold(input.Search),
		Filters:  map[string]interface{}{},
	}
	filter.Normalize()

	if !input.IncludeInactive {
		filter.Filters["status"] = string(catalog.ProductStatusActive)
	}
	if input.CategoryID != nil {
		filter.Filters["category_id"] = *input.CategoryID
	}
	if input.BrandID != nil {
		filter.Filters["brand_id"] = *input.BrandID
	}
	if input.MinPrice != nil {
		filter.Filters["min_price"] = *input.MinPrice
	}
	if input.MaxPrice != nil {
		filter.Filters["max_price"] = *input.MaxPrice
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count products")
	}

	infos := make([]ProductInfo, len(products))
	for i := range products {
		infos[i] = toProductInfo(&products[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a product's details, price, stock and associations
func (s *ProductService) Update(ctx context.Context, input UpdateProductInput) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := product.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyVND(*input.Price)); err != nil {
			return nil, err
		}
	}
	if input.Quantity != nil {
		if err := product.SetStock(*input.Quantity); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category does not exist")
		}
		product.SetCategory(input.CategoryID)
	}
	if input.BrandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *input.BrandID); err != nil {
			return nil, shared.NewDomainError("INVALID_BRAND", "Brand does not exist")
		}
		product.SetBrand(input.BrandID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	info := toProductInfo(product)
	return &info, nil
}

// Delete soft-deletes a product. Deleting an already inactive product is a
// no-op rather than an error.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}

	if !product.IsActive() {
		return nil
	}

	product.Deactivate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to deactivate product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.logger.Info("Product deactivated", zap.String("product_id", id.String()))
	return nil
}

// Activate restores a soft-deleted product
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}

	product.Activate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate product")
	}
	return nil
}

// UploadImage stores a product image and records its key and public URL
func (s *ProductService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	key := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New().String(), path.Ext(filename))
	url, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		s.logger.Error("Failed to upload product image", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to upload image")
	}

	oldKey := product.ImageKey
	product.SetImage(key, url)

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product image", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save image")
	}

	if oldKey != "" {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			// The replaced object is orphaned, not fatal
			s.logger.Warn("Failed to delete replaced image", zap.String("key", oldKey), zap.Error(err))
		}
	}

	info := toProductInfo(product)
	return &info, nil
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BrandService handles brand operations
type BrandService struct {
	brandRepo catalog.BrandRepository
	logger    *zap.Logger
}

// NewBrandService creates a new brand service
func NewBrandService(brandRepo catalog.BrandRepository, logger *zap.Logger) *BrandService {
	return &BrandService{
		brandRepo: brandRepo,
		logger:    logger,
	}
}

// Create adds a brand
func (s *BrandService) Create(ctx context.Context, input CreateBrandInput) (*BrandInfo, error) {
	if existing, err := s.brandRepo.FindByName(ctx, input.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A brand with this name already exists")
	}

	brand, err := catalog.NewBrand(input.Name, input.LogoURL)
	if err != nil {
		return nil, err
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		s.logger.Error("Failed to save brand", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create brand")
	}

	info := toBrandInfo(brand)
	return &info, nil
}

// Get returns a brand by ID
func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*BrandInfo, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toBrandInfo(brand)
	return &info, nil
}

// List returns all brands ordered by name
func (s *BrandService) List(ctx context.Context) ([]BrandInfo, error) {
	brands, err := s.brandRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list brands", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list brands")
	}

	infos := make([]BrandInfo, len(brands))
	for i := range brands {
		infos[i] = toBrandInfo(&brands[i])
	}
	return infos, nil
}

// Update changes a brand's name and logo
func (s *BrandService) Update(ctx context.Context, input UpdateBrandInput) (*BrandInfo, error) {
	brand, err := s.brandRepo.FindByID(ctx, input.BrandID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := brand.Update(input.Name, input.LogoURL); err != nil {
		return nil, err
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		s.logger.Error("Failed to save brand update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update brand")
	}

	info := toBrandInfo(brand)
	return &info, nil
}

// Delete removes a brand. A brand still referenced by products is rejected
// with a business rule error.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		if err == shared.ErrReferenced {
			return err
		}
		s.logger.Error("Failed to delete brand", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete brand")
	}

	s.logger.Info("Brand deleted", zap.String("brand_id", id.String()))
	return nil
}

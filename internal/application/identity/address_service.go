package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AddressService handles shipping address operations. Every operation is
// scoped to the owning account.
type AddressService struct {
	addressRepo identity.AddressRepository
	logger      *zap.Logger
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo identity.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// Create adds a shipping address. The first address of an account becomes
// the default automatically.
func (s *AddressService) Create(ctx context.Context, input CreateAddressInput) (*AddressInfo, error) {
	address, err := identity.NewAddress(
		input.AccountID,
		input.RecipientName, input.RecipientPhone,
		input.Street, input.Ward, input.District, input.City,
	)
	if err != nil {
		return nil, err
	}

	count, err := s.addressRepo.CountForAccount(ctx, input.AccountID)
	if err != nil {
		s.logger.Error("Failed to count addresses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create address")
	}
	if count == 0 {
		address.IsDefault = true
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		s.logger.Error("Failed to save address", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create address")
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, input.AccountID, address.ID); err != nil {
			s.logger.Error("Failed to set default address", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to set default address")
		}
		address.IsDefault = true
	}

	info := toAddressInfo(address)
	return &info, nil
}

// List returns all addresses of an account, default first
func (s *AddressService) List(ctx context.Context, accountID uuid.UUID) ([]AddressInfo, error) {
	addresses, err := s.addressRepo.FindAllForAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("Failed to list addresses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list addresses")
	}

	infos := make([]AddressInfo, len(addresses))
	for i := range addresses {
		infos[i] = toAddressInfo(&addresses[i])
	}
	return infos, nil
}

// Get returns one address of an account
func (s *AddressService) Get(ctx context.Context, accountID, addressID uuid.UUID) (*AddressInfo, error) {
	address, err := s.addressRepo.FindByIDForAccount(ctx, accountID, addressID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toAddressInfo(address)
	return &info, nil
}

// Update replaces the fields of an account's address
func (s *AddressService) Update(ctx context.Context, input UpdateAddressInput) (*AddressInfo, error) {
	address, err := s.addressRepo.FindByIDForAccount(ctx, input.AccountID, input.AddressID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := address.Update(
		input.RecipientName, input.RecipientPhone,
		input.Street, input.Ward, input.District, input.City,
	); err != nil {
		return nil, err
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		s.logger.Error("Failed to save address update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update address")
	}

	info := toAddressInfo(address)
	return &info, nil
}

// SetDefault marks an address as the account's default shipping address
func (s *AddressService) SetDefault(ctx context.Context, accountID, addressID uuid.UUID) error {
	if _, err := s.addressRepo.FindByIDForAccount(ctx, accountID, addressID); err != nil {
		return shared.ErrNotFound
	}

	if err := s.addressRepo.SetDefault(ctx, accountID, addressID); err != nil {
		s.logger.Error("Failed to set default address", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to set default address")
	}
	return nil
}

// Delete removes an account's address
func (s *AddressService) Delete(ctx context.Context, accountID, addressID uuid.UUID) error {
	if _, err := s.addressRepo.FindByIDForAccount(ctx, accountID, addressID); err != nil {
		return shared.ErrNotFound
	}

	if err := s.addressRepo.Delete(ctx, accountID, addressID); err != nil {
		s.logger.Error("Failed to delete address", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete address")
	}
	return nil
}

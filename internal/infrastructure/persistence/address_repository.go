package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Address, error) {
	var address identity.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByIDForAccount finds an address by ID scoped to an account
func (r *GormAddressRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*identity.Address, error) {
	var address identity.Address
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindAllForAccount lists all addresses of an account, default first
func (r *GormAddressRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID) ([]identity.Address, error) {
	var addresses []identity.Address
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// CountForAccount counts the addresses of an account
func (r *GormAddressRepository) CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Address{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *identity.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// Delete removes an address scoped to an account
func (r *GormAddressRepository) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Address{}, "account_id = ? AND id = ?", accountID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetDefault marks one address as the account's default. The clear and the
// set run in one transaction so the at-most-one-default invariant holds.
func (r *GormAddressRepository) SetDefault(ctx context.Context, accountID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&identity.Address{}).
			Where("account_id = ? AND is_default = ?", accountID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&identity.Address{}).
			Where("account_id = ? AND id = ?", accountID, id).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ identity.AddressRepository = (*GormAddressRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByAccount finds the cart of an account, with items loaded
func (r *GormCartRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("account_id = ?", accountID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save creates or updates a cart and replaces its items. Lines removed in
// memory must also disappear from the table, so the items are rewritten
// rather than upserted.
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			return err
		}

		if err := tx.Delete(&shopping.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
			return err
		}

		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteItems removes all items of a cart
func (r *GormCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&shopping.CartItem{}, "cart_id = ?", cartID).Error
}

var _ shopping.CartRepository = (*GormCartRepository)(nil)

package persistence

import (
	"context"

	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCheckoutStore implements order.CheckoutStore using GORM transactions
type GormCheckoutStore struct {
	db *gorm.DB
}

// NewGormCheckoutStore creates a new GormCheckoutStore
func NewGormCheckoutStore(db *gorm.DB) *GormCheckoutStore {
	return &GormCheckoutStore{db: db}
}

// CreateOrder runs the checkout transaction: the optional new address, the
// guarded stock decrements and the order with its items all commit together
// or not at all.
func (s *GormCheckoutStore) CreateOrder(ctx context.Context, checkout *order.Checkout) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if checkout.NewAddress != nil {
			if err := tx.Create(checkout.NewAddress).Error; err != nil {
				return err
			}
		}

		for _, d := range checkout.Decrements {
			// The quantity guard in the WHERE clause makes the decrement
			// atomic: a concurrent checkout that drained the stock first
			// leaves this update matching zero rows.
			result := tx.Model(&catalog.Product{}).
				Where("id = ? AND quantity >= ?", d.ProductID, d.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", d.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrInsufficientStock
			}
		}

		if err := tx.Omit("Items").Create(checkout.Order).Error; err != nil {
			if isDuplicateKey(err) {
				return shared.NewDomainError("DUPLICATE_ORDER_NUMBER", "Order number collision, retry checkout")
			}
			return err
		}

		if len(checkout.Order.Items) > 0 {
			if err := tx.Create(&checkout.Order.Items).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CancelOrder persists a cancelled order and restores the stock its items
// had taken, in one transaction
func (s *GormCheckoutStore) CancelOrder(ctx context.Context, o *order.Order, restock []order.StockChange) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(o).Error; err != nil {
			return err
		}

		for _, c := range restock {
			if err := tx.Model(&catalog.Product{}).
				Where("id = ?", c.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", c.Quantity)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

var _ order.CheckoutStore = (*GormCheckoutStore)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/payment"
	"github.com/vietcart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransactionRepository implements payment.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByRequestID finds a payment attempt by its gateway request id
func (r *GormTransactionRepository) FindByRequestID(ctx context.Context, requestID string) (*payment.Transaction, error) {
	var tx payment.Transaction
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindLatestByOrder finds the most recent payment attempt for an order
func (r *GormTransactionRepository) FindLatestByOrder(ctx context.Context, orderID uuid.UUID) (*payment.Transaction, error) {
	var tx payment.Transaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// Save creates or updates a payment attempt
func (r *GormTransactionRepository) Save(ctx context.Context, tx *payment.Transaction) error {
	if err := r.db.WithContext(ctx).Save(tx).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ payment.TransactionRepository = (*GormTransactionRepository)(nil)

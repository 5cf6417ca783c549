package payment

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository defines the interface for payment attempt persistence
type TransactionRepository interface {
	// FindByRequestID finds a transaction by its gateway request ID
	FindByRequestID(ctx context.Context, requestID string) (*Transaction, error)

	// FindLatestByOrder finds the most recent transaction for an order
	FindLatestByOrder(ctx context.Context, orderID uuid.UUID) (*Transaction, error)

	// Save creates or updates a transaction
	Save(ctx context.Context, tx *Transaction) error
}

package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/shared"
)

// TransactionStatus represents the lifecycle of a payment attempt
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction records one payment attempt against an order
type Transaction struct {
	shared.BaseAggregateRoot
	OrderID        uuid.UUID         `gorm:"type:char(36);not null;index"`
	RequestID      string            `gorm:"type:varchar(64);not null;uniqueIndex"`
	GatewayTransID string            `gorm:"type:varchar(64)"`
	Amount         int64             `gorm:"not null"` // whole VND
	ResultCode     *int              ``
	Message        string            `gorm:"type:varchar(255)"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null"`
	RawPayload     string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "payment_transactions"
}

// NewTransaction creates a pending payment attempt
func NewTransaction(orderID uuid.UUID, requestID string, amount int64) (*Transaction, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if requestID == "" {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Request ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	return &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		RequestID:         requestID,
		Amount:            amount,
		Status:            TransactionStatusPending,
	}, nil
}

// Complete records the gateway's final verdict for the attempt
func (t *Transaction) Complete(gatewayTransID string, resultCode int, message, rawPayload string) {
	t.GatewayTransID = gatewayTransID
	t.ResultCode = &resultCode
	t.Message = message
	t.RawPayload = rawPayload
	if resultCode == 0 {
		t.Status = TransactionStatusSuccess
	} else {
		t.Status = TransactionStatusFailed
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsFinal reports whether the attempt has a verdict
func (t *Transaction) IsFinal() bool {
	return t.Status != TransactionStatusPending
}

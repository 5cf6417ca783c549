package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/payment"
)

// CreatePaymentInput contains input for opening a MoMo payment
type CreatePaymentInput struct {
	AccountID uuid.UUID `json:"-"`
	OrderID   uuid.UUID `json:"-"`
}

// CreatePaymentResult carries the redirect data for the buyer
type CreatePaymentResult struct {
	OrderNumber string `json:"order_number"`
	RequestID   string `json:"request_id"`
	Amount      int64  `json:"amount"`
	PayURL      string `json:"pay_url"`
	Deeplink    string `json:"deeplink,omitempty"`
	QRCodeURL   string `json:"qr_code_url,omitempty"`
}

// IPNResult reports what processing a notification did
type IPNResult struct {
	OrderNumber string `json:"order_number"`
	Captured    bool   `json:"captured"`
	Duplicate   bool   `json:"duplicate"`
}

// TransactionInfo is the payment attempt projection (staff view)
type TransactionInfo struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	RequestID      string    `json:"request_id"`
	GatewayTransID string    `json:"gateway_trans_id,omitempty"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toTransactionInfo(t *payment.Transaction) *TransactionInfo {
	return &TransactionInfo{
		ID:             t.ID,
		OrderID:        t.OrderID,
		RequestID:      t.RequestID,
		GatewayTransID: t.GatewayTransID,
		Amount:         t.Amount,
		Status:         string(t.Status),
		Message:        t.Message,
		CreatedAt:      t.CreatedAt,
	}
}

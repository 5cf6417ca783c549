package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/shared"
)

// Gateway-level errors
var (
	ErrInvalidSignature = shared.NewDomainError("INVALID_SIGNATURE", "Callback signature verification failed")
	ErrGatewayRejected  = shared.NewDomainError("GATEWAY_REJECTED", "Payment gateway rejected the request")
)

// CreateRequest carries everything needed to open a payment at the gateway.
// Amount is in whole VND, as the gateway expects integer amounts.
type CreateRequest struct {
	OrderID     uuid.UUID
	OrderNumber string
	RequestID   string // unique per attempt, idempotency key at the gateway
	Amount      int64
	OrderInfo   string
	ExtraData   string
}

// Validate checks the request fields
func (r *CreateRequest) Validate() error {
	if r.OrderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if r.OrderNumber == "" {
		return shared.NewDomainError("INVALID_ORDER", "Order number cannot be empty")
	}
	if r.RequestID == "" {
		return shared.NewDomainError("INVALID_REQUEST", "Request ID cannot be empty")
	}
	if r.Amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return nil
}

// CreateResponse is the gateway's answer to a create-payment request
type CreateResponse struct {
	PayURL      string
	Deeplink    string
	QRCodeURL   string
	ResultCode  int
	Message     string
	RawResponse string
}

// IPN is the gateway's asynchronous payment notification payload
type IPN struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"` // our order number
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

// IsSuccess reports whether the notification signals a captured payment
func (n *IPN) IsSuccess() bool {
	return n.ResultCode == 0
}

// Gateway is the port to an external payment provider
type Gateway interface {
	// CreatePayment opens a payment at the gateway and returns the redirect
	// data for the buyer
	CreatePayment(ctx context.Context, req *CreateRequest) (*CreateResponse, error)

	// VerifyIPN recomputes the notification signature and compares it to the
	// provided one. Returns ErrInvalidSignature on mismatch; the caller must
	// not trust any field of the notification until this passes.
	VerifyIPN(n *IPN) error
}

package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vietcart/backend/internal/domain/order"
)

// CheckoutItemInput is one requested order line. The price is never taken
// from the client; it is re-read from the catalog at checkout.
type CheckoutItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// NewAddressInput is a fresh shipping address supplied inline at checkout
type NewAddressInput struct {
	RecipientName  string `json:"recipient_name" binding:"required,max=100"`
	RecipientPhone string `json:"recipient_phone" binding:"required,max=20"`
	Street         string `json:"street" binding:"required,max=255"`
	Ward           string `json:"ward" binding:"omitempty,max=100"`
	District       string `json:"district" binding:"required,max=100"`
	City           string `json:"city" binding:"required,max=100"`
}

// CheckoutInput contains input for placing an order. Exactly one of
// AddressID and NewAddress must be provided.
type CheckoutInput struct {
	AccountID     uuid.UUID           `json:"-"`
	Items         []CheckoutItemInput `json:"items" binding:"required"`
	AddressID     *uuid.UUID          `json:"address_id"`
	NewAddress    *NewAddressInput    `json:"new_address"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
	Note          string              `json:"note" binding:"omitempty,max=500"`
}

// UpdateStatusInput contains input for a staff status change
type UpdateStatusInput struct {
	OrderID uuid.UUID `json:"-"`
	Status  string    `json:"status" binding:"required"`
}

// CancelInput contains input for a customer cancellation
type CancelInput struct {
	AccountID uuid.UUID `json:"-"`
	OrderID   uuid.UUID `json:"-"`
	Reason    string    `json:"reason" binding:"omitempty,max=255"`
}

// ItemInfo is one order line projection
type ItemInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderInfo is the order projection returned to clients
type OrderInfo struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	StatusLabel    string          `json:"status_label"`
	PaymentMethod  string          `json:"payment_method"`
	RecipientName  string          `json:"recipient_name"`
	RecipientPhone string          `json:"recipient_phone"`
	ShippingLine   string          `json:"shipping_line"`
	Items          []ItemInfo      `json:"items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Note           string          `json:"note,omitempty"`
	IsPaid         bool            `json:"is_paid"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CancelReason   string          `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toOrderInfo(o *order.Order) OrderInfo {
	items := make([]ItemInfo, len(o.Items))
	for i := range o.Items {
		items[i] = ItemInfo{
			ProductID:   o.Items[i].ProductID,
			ProductName: o.Items[i].ProductName,
			ProductCode: o.Items[i].ProductCode,
			Quantity:    o.Items[i].Quantity,
			UnitPrice:   o.Items[i].UnitPrice,
			Amount:      o.Items[i].Amount,
		}
	}

	return OrderInfo{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status.String(),
		StatusLabel:    o.Status.Label(),
		PaymentMethod:  string(o.PaymentMethod),
		RecipientName:  o.RecipientName,
		RecipientPhone: o.RecipientPhone,
		ShippingLine:   o.ShippingLine,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		ShippingFee:    o.ShippingFee,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		Note:           o.Note,
		IsPaid:         o.IsPaid,
		PaidAt:         o.PaidAt,
		CancelReason:   o.CancelReason,
		CreatedAt:      o.CreatedAt,
	}
}

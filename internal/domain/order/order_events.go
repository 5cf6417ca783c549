package order

import (
	"github.com/shopspring/decimal"
	"github.com/vietcart/backend/internal/domain/shared"
)

// Event types for the order context
const (
	EventTypeOrderCreated   = "order.created"
	EventTypeOrderPaid      = "order.paid"
	EventTypeOrderCancelled = "order.cancelled"
)

// OrderCreatedEvent is published when an order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		PaymentMethod:   o.PaymentMethod,
		FinalAmount:     o.FinalAmount,
	}
}

// OrderPaidEvent is published when a payment is captured for an order
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	TransactionID string          `json:"transaction_id"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		TransactionID:   o.TransactionID,
		FinalAmount:     o.FinalAmount,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		Reason:          o.CancelReason,
	}
}

package order

import (
	"context"

	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CreatedHandler reacts to placed orders: it logs them and feeds the order
// metrics. Wired to the event bus at startup.
type CreatedHandler struct {
	counter metric.Int64Counter
	logger  *zap.Logger
}

// NewCreatedHandler creates the handler and registers its counter
func NewCreatedHandler(meter metric.Meter, logger *zap.Logger) (*CreatedHandler, error) {
	counter, err := meter.Int64Counter("orders_placed_total",
		metric.WithDescription("Number of orders placed"))
	if err != nil {
		return nil, err
	}

	return &CreatedHandler{
		counter: counter,
		logger:  logger,
	}, nil
}

// Handle processes an order.created event
func (h *CreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.OrderCreatedEvent)
	if !ok {
		return nil
	}

	h.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("payment_method", string(created.PaymentMethod)),
	))

	h.logger.Info("Order placed event",
		zap.String("order_number", created.OrderNumber),
		zap.String("payment_method", string(created.PaymentMethod)),
		zap.String("final_amount", created.FinalAmount.String()))

	return nil
}

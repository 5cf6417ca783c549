package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles order listing and lifecycle operations
type OrderService struct {
	orderRepo     order.Repository
	checkoutStore order.CheckoutStore
	publisher     shared.EventPublisher
	logger        *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo order.Repository,
	checkoutStore order.CheckoutStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		checkoutStore: checkoutStore,
		publisher:     publisher,
		logger:        logger,
	}
}

// Get returns one order of an account
func (s *OrderService) Get(ctx context.Context, accountID, orderID uuid.UUID) (*OrderInfo, error) {
	o, err := s.orderRepo.FindByIDForAccount(ctx, accountID, orderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toOrderInfo(o)
	return &info, nil
}

// List returns the orders of an account, newest first
func (s *OrderService) List(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderInfo], error) {
	filter.Normalize()

	orders, err := s.orderRepo.FindAllForAccount(ctx, accountID, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	total, err := s.orderRepo.CountForAccount(ctx, accountID, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count orders")
	}

	infos := make([]OrderInfo, len(orders))
	for i := range orders {
		infos[i] = toOrderInfo(&orders[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListAll returns all orders (staff view)
func (s *OrderService) ListAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderInfo], error) {
	filter.Normalize()

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count orders")
	}

	infos := make([]OrderInfo, len(orders))
	for i := range orders {
		infos[i] = toOrderInfo(&orders[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetAny returns an order without account scoping (staff view)
func (s *OrderService) GetAny(ctx context.Context, orderID uuid.UUID) (*OrderInfo, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toOrderInfo(o)
	return &info, nil
}

// Cancel cancels a customer's own order and restores the reserved stock in
// the same transaction
func (s *OrderService) Cancel(ctx context.Context, input CancelInput) (*OrderInfo, error) {
	o, err := s.orderRepo.FindByIDForAccount(ctx, input.AccountID, input.OrderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := o.Cancel(input.Reason); err != nil {
		return nil, err
	}

	restock := make([]order.StockChange, len(o.Items))
	for i := range o.Items {
		restock[i] = order.StockChange{
			ProductID: o.Items[i].ProductID,
			Quantity:  o.Items[i].Quantity,
		}
	}

	if err := s.checkoutStore.CancelOrder(ctx, o, restock); err != nil {
		s.logger.Error("Cancel transaction failed",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel order")
	}

	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()

	s.logger.Info("Order cancelled",
		zap.String("order_number", o.OrderNumber),
		zap.String("reason", input.Reason))

	info := toOrderInfo(o)
	return &info, nil
}

// UpdateStatus moves an order through its lifecycle (staff operation)
func (s *OrderService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderInfo, error) {
	target := order.Status(input.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status")
	}

	o, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	switch target {
	case order.StatusConfirmed:
		err = o.Confirm()
	case order.StatusShipping:
		err = o.Ship()
	case order.StatusDelivered:
		err = o.Deliver()
	case order.StatusCancelled:
		err = o.Cancel("Hủy bởi cửa hàng")
	default:
		err = shared.NewDomainError("INVALID_STATE", "Orders cannot be moved back to pending")
	}
	if err != nil {
		return nil, err
	}

	if target == order.StatusCancelled {
		restock := make([]order.StockChange, len(o.Items))
		for i := range o.Items {
			restock[i] = order.StockChange{
				ProductID: o.Items[i].ProductID,
				Quantity:  o.Items[i].Quantity,
			}
		}
		if err := s.checkoutStore.CancelOrder(ctx, o, restock); err != nil {
			s.logger.Error("Cancel transaction failed", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel order")
		}
	} else {
		if err := s.orderRepo.Save(ctx, o); err != nil {
			s.logger.Error("Failed to save status change", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
		}
	}

	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()

	s.logger.Info("Order status changed",
		zap.String("order_number", o.OrderNumber),
		zap.String("status", o.Status.String()))

	info := toOrderInfo(o)
	return &info, nil
}

// Delete removes a cancelled order and its items (staff operation). Orders
// in any other state are kept for the books.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return shared.ErrNotFound
	}

	if o.Status != order.StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only cancelled orders can be deleted")
	}

	if err := s.orderRepo.DeleteWithItems(ctx, orderID); err != nil {
		s.logger.Error("Failed to delete order", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete order")
	}

	s.logger.Info("Order deleted", zap.String("order_number", o.OrderNumber))
	return nil
}

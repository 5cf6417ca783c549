package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"github.com/vietcart/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// CheckoutService places orders. The whole placement runs in one database
// transaction through the checkout store: address insert, guarded stock
// decrements and the order insert either all commit or all roll back.
type CheckoutService struct {
	orderRepo     order.Repository
	checkoutStore order.CheckoutStore
	productRepo   catalog.ProductRepository
	addressRepo   identity.AddressRepository
	cartRepo      shopping.CartRepository
	publisher     shared.EventPublisher
	shippingFee   valueobject.Money
	logger        *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo order.Repository,
	checkoutStore order.CheckoutStore,
	productRepo catalog.ProductRepository,
	addressRepo identity.AddressRepository,
	cartRepo shopping.CartRepository,
	publisher shared.EventPublisher,
	shippingFee valueobject.Money,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		checkoutStore: checkoutStore,
		productRepo:   productRepo,
		addressRepo:   addressRepo,
		cartRepo:      cartRepo,
		publisher:     publisher,
		shippingFee:   shippingFee,
		logger:        logger,
	}
}

// Checkout places an order for the account
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*OrderInfo, error) {
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}

	method := order.PaymentMethod(input.PaymentMethod)
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}

	address, newAddress, err := s.resolveAddress(ctx, input)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		s.logger.Error("Failed to generate order number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	o, err := order.NewOrder(input.AccountID, orderNumber, method)
	if err != nil {
		return nil, err
	}
	o.Note = input.Note
	if err := o.SetRecipient(address.ID, address.RecipientName, address.RecipientPhone, address.FullLine()); err != nil {
		return nil, err
	}

	decrements, err := s.addItems(ctx, o, input.Items)
	if err != nil {
		return nil, err
	}

	if err := o.ApplyShippingFee(s.shippingFee); err != nil {
		return nil, err
	}

	checkout := &order.Checkout{
		Order:      o,
		NewAddress: newAddress,
		Decrements: decrements,
	}
	if err := s.checkoutStore.CreateOrder(ctx, checkout); err != nil {
		if err == shared.ErrInsufficientStock {
			return nil, err
		}
		s.logger.Error("Checkout transaction failed",
			zap.String("order_number", orderNumber),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	s.clearCart(ctx, o)

	if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()

	s.logger.Info("Order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("account_id", o.AccountID.String()),
		zap.String("final_amount", o.FinalAmount.String()))

	info := toOrderInfo(o)
	return &info, nil
}

// resolveAddress loads the referenced address scoped to the buyer, or builds
// a new one from the inline fields. A fresh address is persisted inside the
// checkout transaction, not here.
func (s *CheckoutService) resolveAddress(ctx context.Context, input CheckoutInput) (*identity.Address, *identity.Address, error) {
	switch {
	case input.AddressID != nil && input.NewAddress != nil:
		return nil, nil, shared.NewDomainError("INVALID_INPUT", "Provide either an address ID or a new address, not both")

	case input.AddressID != nil:
		address, err := s.addressRepo.FindByIDForAccount(ctx, input.AccountID, *input.AddressID)
		if err != nil {
			return nil, nil, shared.NewDomainError("NOT_FOUND", "Shipping address not found")
		}
		return address, nil, nil

	case input.NewAddress != nil:
		address, err := identity.NewAddress(
			input.AccountID,
			input.NewAddress.RecipientName, input.NewAddress.RecipientPhone,
			input.NewAddress.Street, input.NewAddress.Ward,
			input.NewAddress.District, input.NewAddress.City,
		)
		if err != nil {
			return nil, nil, err
		}
		return address, address, nil

	default:
		return nil, nil, shared.NewDomainError("INVALID_INPUT", "A shipping address is required")
	}
}

// addItems re-reads each product from the catalog, snapshots its current
// price into the order and collects the stock decrements
func (s *CheckoutService) addItems(ctx context.Context, o *order.Order, items []CheckoutItemInput) ([]order.StockChange, error) {
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load checkout products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	decrements := make([]order.StockChange, 0, len(items))
	for _, line := range items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Product "+product.Code+" is no longer available")
		}
		if !product.IsAvailable(line.Quantity) {
			return nil, shared.ErrInsufficientStock
		}

		if _, err := o.AddItem(product.ID, product.Name, product.Code, line.Quantity, product.GetPriceMoney()); err != nil {
			return nil, err
		}
		decrements = append(decrements, order.StockChange{
			ProductID: product.ID,
			Quantity:  line.Quantity,
		})
	}

	return decrements, nil
}

// clearCart drops the ordered products from the buyer's cart. A failure here
// leaves a stale cart but never the order.
func (s *CheckoutService) clearCart(ctx context.Context, o *order.Order) {
	cart, err := s.cartRepo.FindByAccount(ctx, o.AccountID)
	if err != nil {
		return
	}

	changed := false
	for i := range o.Items {
		if cart.RemoveItem(o.Items[i].ProductID) == nil {
			changed = true
		}
	}
	if !changed {
		return
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("account_id", o.AccountID.String()),
			zap.Error(err))
	}
}

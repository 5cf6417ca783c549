package shopping

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

// CartService handles shopping cart operations. A missing cart behaves like
// an empty one; the row is created lazily on the first add.
type CartService struct {
	cartRepo    shopping.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo shopping.CartRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the account's cart, enriched with current product data
func (s *CartService) Get(ctx context.Context, accountID uuid.UUID) (*CartInfo, error) {
	cart, err := s.loadOrCreate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	info := toCartInfo(cart, products)
	return &info, nil
}

// AddItem adds a product to the cart. The line records the product's current
// price; availability is re-checked at checkout.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*CartInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Product is no longer available")
	}

	cart, err := s.loadOrCreate(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	existing := 0
	for idx := range cart.Items {
		if cart.Items[idx].ProductID == input.ProductID {
			existing = cart.Items[idx].Quantity
		}
	}
	if !product.IsAvailable(existing + input.Quantity) {
		return nil, shared.ErrInsufficientStock
	}

	if err := cart.AddItem(input.ProductID, input.Quantity, product.GetPriceMoney()); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	info := toCartInfo(cart, products)
	return &info, nil
}

// UpdateItem sets the quantity of a cart line
func (s *CartService) UpdateItem(ctx context.Context, input UpdateItemInput) (*CartInfo, error) {
	cart, err := s.loadOrCreate(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if !product.IsAvailable(input.Quantity) {
		return nil, shared.ErrInsufficientStock
	}

	if err := cart.UpdateItemQuantity(input.ProductID, input.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	info := toCartInfo(cart, products)
	return &info, nil
}

// RemoveItem removes a product line from the cart
func (s *CartService) RemoveItem(ctx context.Context, accountID, productID uuid.UUID) (*CartInfo, error) {
	cart, err := s.loadOrCreate(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update cart")
	}

	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	info := toCartInfo(cart, products)
	return &info, nil
}

// Clear empties the account's cart
func (s *CartService) Clear(ctx context.Context, accountID uuid.UUID) error {
	cart, err := s.cartRepo.FindByAccount(ctx, accountID)
	if err != nil {
		// Nothing to clear
		return nil
	}

	if err := s.cartRepo.DeleteItems(ctx, cart.ID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to clear cart")
	}
	return nil
}

func (s *CartService) loadOrCreate(ctx context.Context, accountID uuid.UUID) (*shopping.Cart, error) {
	cart, err := s.cartRepo.FindByAccount(ctx, accountID)
	if err == nil {
		return cart, nil
	}

	cart, err = shopping.NewCart(accountID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) loadProducts(ctx context.Context, cart *shopping.Cart) (map[uuid.UUID]*catalog.Product, error) {
	if len(cart.Items) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	ids := make([]uuid.UUID, len(cart.Items))
	for i := range cart.Items {
		ids[i] = cart.Items[i].ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load cart products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

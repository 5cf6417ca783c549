package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"github.com/vietcart/backend/internal/domain/shopping"
	"go.uber.org/zap"
)

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) FindByAccount(ctx context.Context, accountID uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, accountID)
	if c := args.Get(0); c != nil {
		return c.(*shopping.Cart), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, cart *shopping.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepo) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func newTestProduct(t *testing.T, code string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(code, "Sản phẩm "+code, valueobject.NewMoneyVNDFromInt(price), stock)
	require.NoError(t, err)
	return p
}

func TestAddItemCreatesCartLazily(t *testing.T) {
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, zap.NewNop())

	accountID := uuid.New()
	product := newTestProduct(t, "SP-001", 150000, 10)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	carts.On("FindByAccount", mock.Anything, accountID).Return(nil, shared.ErrNotFound)
	carts.On("Save", mock.Anything, mock.AnythingOfType("*shopping.Cart")).Return(nil)

	info, err := svc.AddItem(context.Background(), AddItemInput{
		AccountID: accountID,
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Equal(t, 2, info.ItemCount)
	assert.True(t, info.Items[0].UnitPrice.Equal(product.Price))
	assert.True(t, info.Items[0].Available)
}

func TestAddItemInsufficientStock(t *testing.T) {
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, zap.NewNop())

	accountID := uuid.New()
	product := newTestProduct(t, "SP-002", 99000, 1)

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	carts.On("FindByAccount", mock.Anything, accountID).Return(nil, shared.ErrNotFound)

	_, err := svc.AddItem(context.Background(), AddItemInput{
		AccountID: accountID,
		ProductID: product.ID,
		Quantity:  3,
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItemMergeCountsExistingQuantity(t *testing.T) {
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, zap.NewNop())

	accountID := uuid.New()
	product := newTestProduct(t, "SP-003", 50000, 3)

	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(product.ID, 2, product.GetPriceMoney()))

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	carts.On("FindByAccount", mock.Anything, accountID).Return(cart, nil)

	_, err = svc.AddItem(context.Background(), AddItemInput{
		AccountID: accountID,
		ProductID: product.ID,
		Quantity:  2,
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock, "2 in cart + 2 added exceeds stock of 3")
}

func TestAddInactiveProductRejected(t *testing.T) {
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, zap.NewNop())

	product := newTestProduct(t, "SP-004", 10000, 5)
	product.Deactivate()
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := svc.AddItem(context.Background(), AddItemInput{
		AccountID: uuid.New(),
		ProductID: product.ID,
		Quantity:  1,
	})
	require.Error(t, err)

	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestGetMissingCartIsEmpty(t *testing.T) {
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, zap.NewNop())

	accountID := uuid.New()
	carts.On("FindByAccount", mock.Anything, accountID).Return(nil, shared.ErrNotFound)

	info, err := svc.Get(context.Background(), accountID)
	require.NoError(t, err)
	assert.Empty(t, info.Items)
	assert.Equal(t, 0, info.ItemCount)
}

func TestRemoveItem(t *testing.T) {
	carts := new(mockCartRepo)
	products := new(mockProductRepo)
	svc := NewCartService(carts, products, zap.NewNop())

	accountID := uuid.New()
	product := newTestProduct(t, "SP-005", 20000, 5)

	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(product.ID, 1, product.GetPriceMoney()))

	carts.On("FindByAccount", mock.Anything, accountID).Return(cart, nil)
	carts.On("Save", mock.Anything, cart).Return(nil)

	info, err := svc.RemoveItem(context.Background(), accountID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, info.Items)

	_, err = svc.RemoveItem(context.Background(), accountID, product.ID)
	require.Error(t, err, "removing an absent line fails")
}

func TestClearMissingCartIsNoop(t *testing.T) {
	carts := new(mockCartRepo)
	svc := NewCartService(carts, new(mockProductRepo), zap.NewNop())

	accountID := uuid.New()
	carts.On("FindByAccount", mock.Anything, accountID).Return(nil, shared.ErrNotFound)

	require.NoError(t, svc.Clear(context.Background(), accountID))
	carts.AssertNotCalled(t, "DeleteItems", mock.Anything, mock.Anything)
}

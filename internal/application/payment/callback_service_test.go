package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/payment"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePayment(ctx context.Context, req *payment.CreateRequest) (*payment.CreateResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*payment.CreateResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) VerifyIPN(n *payment.IPN) error {
	args := m.Called(n)
	return args.Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, accountID, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepo) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOrderRepo) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockTxRepo struct {
	mock.Mock
}

func (m *mockTxRepo) FindByRequestID(ctx context.Context, requestID string) (*payment.Transaction, error) {
	args := m.Called(ctx, requestID)
	if tx := args.Get(0); tx != nil {
		return tx.(*payment.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTxRepo) FindLatestByOrder(ctx context.Context, orderID uuid.UUID) (*payment.Transaction, error) {
	args := m.Called(ctx, orderID)
	if tx := args.Get(0); tx != nil {
		return tx.(*payment.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTxRepo) Save(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type callbackFixture struct {
	gateway     *mockGateway
	orders      *mockOrderRepo
	txs         *mockTxRepo
	idempotency *mockIdempotencyStore
	publisher   *mockPublisher
	svc         *CallbackService
}

func newCallbackFixture() *callbackFixture {
	f := &callbackFixture{
		gateway:     new(mockGateway),
		orders:      new(mockOrderRepo),
		txs:         new(mockTxRepo),
		idempotency: new(mockIdempotencyStore),
		publisher:   new(mockPublisher),
	}
	f.svc = NewCallbackService(f.gateway, f.orders, f.txs, f.idempotency, f.publisher, zap.NewNop())
	return f
}

func newMoMoOrder(t *testing.T, amount int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(uuid.New(), "VC20260828-0001", order.PaymentMethodMoMo)
	require.NoError(t, err)
	require.NoError(t, o.SetRecipient(uuid.New(), "Nguyen Van A", "0901234567", "12 Lê Lợi, Quận 1"))
	_, err = o.AddItem(uuid.New(), "Điện thoại", "SP-001", 1, valueobject.NewMoneyVNDFromInt(amount))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func successIPN(requestID string, amount int64) *payment.IPN {
	return &payment.IPN{
		PartnerCode:  "MOMOTEST",
		OrderID:      "VC20260828-0001",
		RequestID:    requestID,
		Amount:       amount,
		TransID:      99001122,
		ResultCode:   0,
		Message:      "Successful.",
		ResponseTime: time.Now().UnixMilli(),
		Signature:    "valid",
	}
}

func TestProcessIPNCapturesOrder(t *testing.T) {
	f := newCallbackFixture()
	o := newMoMoOrder(t, 230000)
	tx, err := payment.NewTransaction(o.ID, "req-0001", 230000)
	require.NoError(t, err)

	n := successIPN("req-0001", 230000)
	f.gateway.On("VerifyIPN", n).Return(nil)
	f.idempotency.On("MarkProcessed", mock.Anything, "momo:ipn:req-0001", ipnIdempotencyTTL).Return(true, nil)
	f.txs.On("FindByRequestID", mock.Anything, "req-0001").Return(tx, nil)
	f.orders.On("FindByOrderNumber", mock.Anything, "VC20260828-0001").Return(o, nil)
	f.txs.On("Save", mock.Anything, tx).Return(nil)
	f.orders.On("Save", mock.Anything, o).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.ProcessIPN(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, result.Captured)
	assert.True(t, o.IsPaid)
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.Equal(t, "99001122", o.TransactionID)
	assert.Equal(t, payment.TransactionStatusSuccess, tx.Status)
}

func TestProcessIPNTamperedSignature(t *testing.T) {
	f := newCallbackFixture()

	n := successIPN("req-0002", 230000)
	f.gateway.On("VerifyIPN", n).Return(payment.ErrInvalidSignature)

	_, err := f.svc.ProcessIPN(context.Background(), n)
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)

	// No state was touched
	f.idempotency.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.txs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProcessIPNDuplicate(t *testing.T) {
	f := newCallbackFixture()

	n := successIPN("req-0003", 230000)
	f.gateway.On("VerifyIPN", n).Return(nil)
	f.idempotency.On("MarkProcessed", mock.Anything, "momo:ipn:req-0003", ipnIdempotencyTTL).Return(false, nil)

	result, err := f.svc.ProcessIPN(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.False(t, result.Captured)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProcessIPNAmountMismatch(t *testing.T) {
	f := newCallbackFixture()
	o := newMoMoOrder(t, 230000)
	tx, err := payment.NewTransaction(o.ID, "req-0004", 230000)
	require.NoError(t, err)

	n := successIPN("req-0004", 999)
	f.gateway.On("VerifyIPN", n).Return(nil)
	f.idempotency.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.idempotency.On("Release", mock.Anything, "momo:ipn:req-0004").Return(nil)
	f.txs.On("FindByRequestID", mock.Anything, "req-0004").Return(tx, nil)
	f.orders.On("FindByOrderNumber", mock.Anything, "VC20260828-0001").Return(o, nil)

	_, err = f.svc.ProcessIPN(context.Background(), n)
	require.Error(t, err)
	assert.False(t, o.IsPaid)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProcessIPNReleasesKeyWhenCaptureSaveFails(t *testing.T) {
	f := newCallbackFixture()
	o := newMoMoOrder(t, 230000)
	tx, err := payment.NewTransaction(o.ID, "req-0006", 230000)
	require.NoError(t, err)

	n := successIPN("req-0006", 230000)
	f.gateway.On("VerifyIPN", n).Return(nil)
	f.idempotency.On("MarkProcessed", mock.Anything, "momo:ipn:req-0006", ipnIdempotencyTTL).Return(true, nil)
	f.txs.On("FindByRequestID", mock.Anything, "req-0006").Return(tx, nil)
	f.orders.On("FindByOrderNumber", mock.Anything, "VC20260828-0001").Return(o, nil)
	f.txs.On("Save", mock.Anything, tx).Return(nil)
	f.orders.On("Save", mock.Anything, o).Return(errors.New("connection reset"))
	f.idempotency.On("Release", mock.Anything, "momo:ipn:req-0006").Return(nil)

	_, err = f.svc.ProcessIPN(context.Background(), n)
	require.Error(t, err)

	// The key is released so the gateway's retry is processed, not dropped
	// as a duplicate
	f.idempotency.AssertCalled(t, "Release", mock.Anything, "momo:ipn:req-0006")
}

func TestProcessIPNGatewayFailureCode(t *testing.T) {
	f := newCallbackFixture()
	o := newMoMoOrder(t, 230000)
	tx, err := payment.NewTransaction(o.ID, "req-0005", 230000)
	require.NoError(t, err)

	n := successIPN("req-0005", 230000)
	n.ResultCode = 1006 // user cancelled
	n.Message = "Transaction denied by user."

	f.gateway.On("VerifyIPN", n).Return(nil)
	f.idempotency.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.txs.On("FindByRequestID", mock.Anything, "req-0005").Return(tx, nil)
	f.orders.On("FindByOrderNumber", mock.Anything, "VC20260828-0001").Return(o, nil)
	f.txs.On("Save", mock.Anything, tx).Return(nil)

	result, err := f.svc.ProcessIPN(context.Background(), n)
	require.NoError(t, err)
	assert.False(t, result.Captured)
	assert.False(t, o.IsPaid)
	assert.Equal(t, payment.TransactionStatusFailed, tx.Status)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreatePayment(t *testing.T) {
	f := newCallbackFixture()
	svc := NewMoMoService(f.gateway, f.orders, f.txs, zap.NewNop())

	o := newMoMoOrder(t, 230000)
	accountID := o.AccountID

	f.orders.On("FindByIDForAccount", mock.Anything, accountID, o.ID).Return(o, nil)
	f.txs.On("Save", mock.Anything, mock.AnythingOfType("*payment.Transaction")).Return(nil)
	f.gateway.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *payment.CreateRequest) bool {
		return req.OrderNumber == "VC20260828-0001" && req.Amount == 230000
	})).Return(&payment.CreateResponse{
		PayURL:     "https://test-payment.momo.vn/pay/abc",
		ResultCode: 0,
	}, nil)

	result, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		AccountID: accountID,
		OrderID:   o.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", result.PayURL)
	assert.Equal(t, int64(230000), result.Amount)
	assert.NotEmpty(t, result.RequestID)
}

func TestCreatePaymentForCODOrder(t *testing.T) {
	f := newCallbackFixture()
	svc := NewMoMoService(f.gateway, f.orders, f.txs, zap.NewNop())

	o, err := order.NewOrder(uuid.New(), "VC20260828-0002", order.PaymentMethodCOD)
	require.NoError(t, err)
	f.orders.On("FindByIDForAccount", mock.Anything, o.AccountID, o.ID).Return(o, nil)

	_, err = svc.CreatePayment(context.Background(), CreatePaymentInput{
		AccountID: o.AccountID,
		OrderID:   o.ID,
	})
	require.Error(t, err)

	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
	f.gateway.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestCreatePaymentAlreadyPaid(t *testing.T) {
	f := newCallbackFixture()
	svc := NewMoMoService(f.gateway, f.orders, f.txs, zap.NewNop())

	o := newMoMoOrder(t, 100000)
	require.NoError(t, o.MarkPaid("tx", time.Now()))
	f.orders.On("FindByIDForAccount", mock.Anything, o.AccountID, o.ID).Return(o, nil)

	_, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		AccountID: o.AccountID,
		OrderID:   o.ID,
	})
	require.Error(t, err)

	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

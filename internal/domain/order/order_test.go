package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "VC20260828-0001", PaymentMethodCOD)
	require.NoError(t, err)
	require.NoError(t, o.SetRecipient(uuid.New(), "Nguyen Van A", "0901234567", "12 Lê Lợi, Quận 1, TP. Hồ Chí Minh, Việt Nam"))
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "Chờ xác nhận", o.Status.Label())
	assert.False(t, o.IsPaid)
	assert.Len(t, o.GetDomainEvents(), 1)

	_, err := NewOrder(uuid.Nil, "N", PaymentMethodCOD)
	assert.Error(t, err)
	_, err = NewOrder(uuid.New(), "", PaymentMethodCOD)
	assert.Error(t, err)
	_, err = NewOrder(uuid.New(), "N", PaymentMethod("paypal"))
	assert.Error(t, err)
}

func TestOrderTotals(t *testing.T) {
	o := newTestOrder(t)

	_, err := o.AddItem(uuid.New(), "Điện thoại", "SP-001", 2, valueobject.NewMoneyVNDFromInt(100))
	require.NoError(t, err)
	_, err = o.AddItem(uuid.New(), "Ốp lưng", "SP-002", 1, valueobject.NewMoneyVNDFromInt(50))
	require.NoError(t, err)

	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.True(t, o.FinalAmount.Equal(decimal.NewFromInt(250)))

	require.NoError(t, o.ApplyShippingFee(valueobject.NewMoneyVNDFromInt(30)))
	require.NoError(t, o.ApplyDiscount(valueobject.NewMoneyVNDFromInt(80)))
	assert.True(t, o.FinalAmount.Equal(decimal.NewFromInt(200)))

	// Discount cannot exceed total + shipping
	assert.Error(t, o.ApplyDiscount(valueobject.NewMoneyVNDFromInt(500)))
}

func TestOrderAddItemRules(t *testing.T) {
	o := newTestOrder(t)
	productID := uuid.New()

	_, err := o.AddItem(productID, "SP", "C", 1, valueobject.NewMoneyVNDFromInt(10))
	require.NoError(t, err)

	_, err = o.AddItem(productID, "SP", "C", 1, valueobject.NewMoneyVNDFromInt(10))
	assert.Error(t, err, "duplicate product rejected")

	_, err = o.AddItem(uuid.New(), "SP", "C", 0, valueobject.NewMoneyVNDFromInt(10))
	assert.Error(t, err)

	require.NoError(t, o.Confirm())
	_, err = o.AddItem(uuid.New(), "SP2", "C2", 1, valueobject.NewMoneyVNDFromInt(10))
	assert.Error(t, err, "items frozen after confirmation")
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipping, false},
		{StatusConfirmed, StatusShipping, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusShipping, StatusDelivered, true},
		{StatusShipping, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderLifecycle(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.AddItem(uuid.New(), "SP", "C", 1, valueobject.NewMoneyVNDFromInt(100))
	require.NoError(t, err)

	require.NoError(t, o.Confirm())
	require.NotNil(t, o.ConfirmedAt)
	require.NoError(t, o.Ship())
	require.NoError(t, o.Deliver())
	require.NotNil(t, o.DeliveredAt)

	// COD orders become paid on delivery
	assert.True(t, o.IsPaid)
	require.NotNil(t, o.PaidAt)

	assert.Error(t, o.Cancel("too late"))
}

func TestOrderCancel(t *testing.T) {
	o := newTestOrder(t)

	assert.True(t, o.CanCancel())
	require.NoError(t, o.Cancel("đổi ý"))
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, "đổi ý", o.CancelReason)
	assert.False(t, o.CanCancel())
}

func TestMarkPaid(t *testing.T) {
	o, err := NewOrder(uuid.New(), "VC20260828-0002", PaymentMethodMoMo)
	require.NoError(t, err)

	paidAt := time.Now()
	require.NoError(t, o.MarkPaid("2147483647", paidAt))
	assert.True(t, o.IsPaid)
	assert.Equal(t, "2147483647", o.TransactionID)
	assert.Equal(t, StatusConfirmed, o.Status, "pending order confirmed on capture")

	assert.Error(t, o.MarkPaid("again", time.Now()), "double capture rejected")

	cancelled, err := NewOrder(uuid.New(), "VC20260828-0003", PaymentMethodMoMo)
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel("khách hủy"))
	assert.Error(t, cancelled.MarkPaid("t", time.Now()))
}

func TestPaidOrderCannotCancel(t *testing.T) {
	o, err := NewOrder(uuid.New(), "VC20260828-0004", PaymentMethodMoMo)
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid("tx", time.Now()))

	assert.False(t, o.CanCancel())
	assert.Error(t, o.Cancel("refund me"))
}

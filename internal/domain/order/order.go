package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
)

// Status represents the status of an order
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// statusLabels maps statuses to their Vietnamese storefront labels
var statusLabels = map[Status]string{
	StatusPending:   "Chờ xác nhận",
	StatusConfirmed: "Đã xác nhận",
	StatusShipping:  "Đang giao hàng",
	StatusDelivered: "Đã giao hàng",
	StatusCancelled: "Đã hủy",
}

// IsValid checks if the status is a known status
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the Vietnamese display label of the status
func (s Status) Label() string {
	return statusLabels[s]
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusShipping || target == StatusCancelled
	case StatusShipping:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // terminal states
	}
	return false
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodMoMo PaymentMethod = "momo"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodMoMo
}

// Item represents a line item in an order. Name, code and unit price are
// snapshots taken at checkout.
type Item struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductID   uuid.UUID       `gorm:"type:char(36);not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductCode string          `gorm:"type:varchar(50);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Quantity * UnitPrice
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// newItem creates a validated order item
func newItem(orderID, productID uuid.UUID, productName, productCode string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      unitPrice.MulInt(int64(quantity)).Amount(),
		CreatedAt:   time.Now(),
	}, nil
}

// Order represents a customer order aggregate root. Recipient fields are a
// snapshot of the shipping address at checkout time.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	AccountID      uuid.UUID       `gorm:"type:char(36);not null;index"`
	AddressID      uuid.UUID       `gorm:"type:char(36);not null"`
	RecipientName  string          `gorm:"type:varchar(100);not null"`
	RecipientPhone string          `gorm:"type:varchar(20);not null"`
	ShippingLine   string          `gorm:"type:varchar(500);not null"`
	Items          []Item          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"` // sum of item amounts
	ShippingFee    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Total + Shipping - Discount
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null"`
	Status         Status          `gorm:"type:varchar(20);not null;index"`
	Note           string          `gorm:"type:varchar(500)"`
	IsPaid         bool            `gorm:"not null;default:false"`
	PaidAt         *time.Time
	TransactionID  string `gorm:"type:varchar(64)"`
	ConfirmedAt    *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status
func NewOrder(accountID uuid.UUID, orderNumber string, paymentMethod PaymentMethod) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		AccountID:         accountID,
		Items:             make([]Item, 0),
		TotalAmount:       decimal.Zero,
		ShippingFee:       decimal.Zero,
		DiscountAmount:    decimal.Zero,
		FinalAmount:       decimal.Zero,
		PaymentMethod:     paymentMethod,
		Status:            StatusPending,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// SetRecipient records the shipping destination snapshot
func (o *Order) SetRecipient(addressID uuid.UUID, name, phone, shippingLine string) error {
	if addressID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADDRESS", "Address ID cannot be empty")
	}
	if name == "" || phone == "" || shippingLine == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Recipient snapshot cannot be empty")
	}

	o.AddressID = addressID
	o.RecipientName = name
	o.RecipientPhone = phone
	o.ShippingLine = shippingLine
	o.UpdatedAt = time.Now()

	return nil
}

// AddItem adds a line item and recalculates the totals.
// Only allowed while the order is pending and unpaid.
func (o *Order) AddItem(productID uuid.UUID, productName, productCode string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if o.Status != StatusPending || o.IsPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a processed order")
	}

	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := newItem(o.ID, productID, productName, productCode, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculate()

	return item, nil
}

// ApplyShippingFee sets the shipping fee and recalculates totals
func (o *Order) ApplyShippingFee(fee valueobject.Money) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Shipping fee cannot be negative")
	}
	o.ShippingFee = fee.Amount()
	o.recalculate()
	return nil
}

// ApplyDiscount sets an order-level discount and recalculates totals.
// The discount cannot exceed the item total plus shipping.
func (o *Order) ApplyDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount cannot be negative")
	}
	if discount.Amount().GreaterThan(o.TotalAmount.Add(o.ShippingFee)) {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount cannot exceed the order amount")
	}
	o.DiscountAmount = discount.Amount()
	o.recalculate()
	return nil
}

func (o *Order) recalculate() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].Amount)
	}
	o.TotalAmount = total
	o.FinalAmount = total.Add(o.ShippingFee).Sub(o.DiscountAmount)
	o.UpdatedAt = time.Now()
}

// GetFinalAmountMoney returns the payable amount as Money
func (o *Order) GetFinalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyVND(o.FinalAmount)
}

// transition moves the order to a new status, enforcing the transition table
func (o *Order) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot change order status from "+o.Status.String()+" to "+target.String())
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Confirm moves the order from pending to confirmed
func (o *Order) Confirm() error {
	if err := o.transition(StatusConfirmed); err != nil {
		return err
	}
	now := time.Now()
	o.ConfirmedAt = &now
	return nil
}

// Ship moves the order from confirmed to shipping
func (o *Order) Ship() error {
	if err := o.transition(StatusShipping); err != nil {
		return err
	}
	now := time.Now()
	o.ShippedAt = &now
	return nil
}

// Deliver completes the order. COD orders are considered paid on delivery.
func (o *Order) Deliver() error {
	if err := o.transition(StatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveredAt = &now
	if o.PaymentMethod == PaymentMethodCOD && !o.IsPaid {
		o.IsPaid = true
		o.PaidAt = &now
	}
	return nil
}

// Cancel cancels a pending or confirmed order. Paid orders cannot be
// cancelled through this path (a refund flow would be needed).
func (o *Order) Cancel(reason string) error {
	if o.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid orders cannot be cancelled")
	}
	if err := o.transition(StatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// CanCancel reports whether the customer may still cancel the order
func (o *Order) CanCancel() bool {
	return !o.IsPaid && (o.Status == StatusPending || o.Status == StatusConfirmed)
}

// MarkPaid records a successful payment capture. A pending order is
// confirmed as part of the capture.
func (o *Order) MarkPaid(transactionID string, paidAt time.Time) error {
	if o.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}
	if o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled orders cannot be paid")
	}

	o.IsPaid = true
	o.PaidAt = &paidAt
	o.TransactionID = transactionID
	if o.Status == StatusPending {
		now := time.Now()
		o.Status = StatusConfirmed
		o.ConfirmedAt = &now
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

package catalog

import "github.com/vietcart/backend/internal/domain/shared"

// Event types for the catalog context
const (
	EventTypeProductCreated     = "catalog.product.created"
	EventTypeProductUpdated     = "catalog.product.updated"
	EventTypeProductDeactivated = "catalog.product.deactivated"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", product.ID),
		Code:            product.Code,
		Name:            product.Name,
	}
}

// ProductUpdatedEvent is published when a product changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", product.ID),
		Code:            product.Code,
	}
}

// ProductDeactivatedEvent is published when a product is soft-deleted
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(product *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, "Product", product.ID),
		Code:            product.Code,
	}
}

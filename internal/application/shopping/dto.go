package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shopping"
)

// AddItemInput contains input for adding a product to the cart
type AddItemInput struct {
	AccountID uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemInput contains input for changing a cart line's quantity
type UpdateItemInput struct {
	AccountID uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"-"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CartItemInfo is one cart line enriched with current product data
type CartItemInfo struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductCode  string          `json:"product_code"`
	ImageURL     string          `json:"image_url,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"` // price at the time of adding
	CurrentPrice decimal.Decimal `json:"current_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Available    bool            `json:"available"`
	AddedAt      time.Time       `json:"added_at"`
}

// CartInfo is the cart projection returned to clients
type CartInfo struct {
	ID        uuid.UUID       `json:"id"`
	Items     []CartItemInfo  `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func toCartInfo(cart *shopping.Cart, products map[uuid.UUID]*catalog.Product) CartInfo {
	items := make([]CartItemInfo, 0, len(cart.Items))
	for idx := range cart.Items {
		line := &cart.Items[idx]
		info := CartItemInfo{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
			AddedAt:   line.AddedAt,
		}
		if p, ok := products[line.ProductID]; ok {
			info.ProductName = p.Name
			info.ProductCode = p.Code
			info.ImageURL = p.ImageURL
			info.CurrentPrice = p.Price
			info.Available = p.IsAvailable(line.Quantity)
		}
		items = append(items, info)
	}

	return CartInfo{
		ID:        cart.ID,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/vietcart/backend/internal/application/order"
	"github.com/vietcart/backend/internal/interfaces/http/dto"
	"github.com/vietcart/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order management endpoints
type OrderHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
	orderService    *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *orderapp.CheckoutService, orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// Checkout handles POST /orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input orderapp.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.AccountID = accountID

	placed, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, placed)
}

// List handles GET /orders (own orders)
func (h *OrderHandler) List(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.orderService.List(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /orders/:id. Buyers see only their own orders; staff see
// any order.
func (h *OrderHandler) Get(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	switch middleware.GetRole(c) {
	case "staff", "admin":
		o, err := h.orderService.GetAny(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, o)
	default:
		o, err := h.orderService.Get(c.Request.Context(), accountID, orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, o)
	}
}

// Cancel handles POST /orders/:id/cancel. Only pending and confirmed orders
// can be cancelled; stock is restored in the same transaction.
func (h *OrderHandler) Cancel(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var input orderapp.CancelInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}
	input.AccountID = accountID
	input.OrderID = orderID

	o, err := h.orderService.Cancel(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// ListAll handles GET /orders/all (staff)
func (h *OrderHandler) ListAll(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if method := c.Query("payment_method"); method != "" {
		filter.Filters["payment_method"] = method
	}

	page, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateStatus handles PUT /orders/:id/status (staff)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var input orderapp.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.OrderID = orderID

	o, err := h.orderService.UpdateStatus(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, o)
}

// Delete handles DELETE /orders/:id (staff). The order and its items go in
// one transaction.
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

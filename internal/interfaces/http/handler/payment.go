package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentapp "github.com/vietcart/backend/internal/application/payment"
	"github.com/vietcart/backend/internal/domain/payment"
)

// PaymentHandler handles MoMo payment endpoints
type PaymentHandler struct {
	BaseHandler
	momoService     *paymentapp.MoMoService
	callbackService *paymentapp.CallbackService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(momoService *paymentapp.MoMoService, callbackService *paymentapp.CallbackService) *PaymentHandler {
	return &PaymentHandler{
		momoService:     momoService,
		callbackService: callbackService,
	}
}

// CreateMoMoRequest carries the order to pay for
type CreateMoMoRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// CreateMoMo handles POST /payment/momo/create. The order must belong to the
// caller and still be awaiting payment.
func (h *PaymentHandler) CreateMoMo(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateMoMoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.momoService.CreatePayment(c.Request.Context(), paymentapp.CreatePaymentInput{
		AccountID: accountID,
		OrderID:   req.OrderID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// IPN handles POST /payment/momo/ipn. The gateway is the caller, not a
// browser, so there is no auth; the HMAC signature inside the payload is the
// authentication. A verified notification, duplicate or not, gets a 204 so
// the gateway stops retrying.
func (h *PaymentHandler) IPN(c *gin.Context) {
	var n payment.IPN
	if err := c.ShouldBindJSON(&n); err != nil {
		h.BadRequest(c, "Malformed notification")
		return
	}

	if _, err := h.callbackService.ProcessIPN(c.Request.Context(), &n); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Status handles GET /payment/momo/status/:orderId
func (h *PaymentHandler) Status(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.parseIDParam(c, "orderId")
	if !ok {
		return
	}

	info, err := h.momoService.Status(c.Request.Context(), accountID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/vietcart/backend/internal/application/identity"
)

// AddressHandler handles shipping address endpoints, always scoped to the
// authenticated account
type AddressHandler struct {
	BaseHandler
	addressService *identityapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *identityapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List handles GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Get handles GET /addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.Get(c.Request.Context(), accountID, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// Create handles POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input identityapp.CreateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.AccountID = accountID

	address, err := h.addressService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, address)
}

// Update handles PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var input identityapp.UpdateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.AccountID = accountID
	input.AddressID = addressID

	address, err := h.addressService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// SetDefault handles PUT /addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.SetDefault(c.Request.Context(), accountID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), accountID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

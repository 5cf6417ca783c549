package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/vietcart/backend/internal/application/catalog"
)

// BrandHandler handles brand endpoints
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalogapp.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// List handles GET /brands
func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.brandService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brands)
}

// Get handles GET /brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
	brandID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	brand, err := h.brandService.Get(c.Request.Context(), brandID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// Create handles POST /brands (staff)
func (h *BrandHandler) Create(c *gin.Context) {
	var input catalogapp.CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, brand)
}

// Update handles PUT /brands/:id (staff)
func (h *BrandHandler) Update(c *gin.Context) {
	brandID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var input catalogapp.UpdateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.BrandID = brandID

	brand, err := h.brandService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// Delete handles DELETE /brands/:id (staff). Brands referenced by products
// cannot be deleted; the FK violation surfaces as a 400.
func (h *BrandHandler) Delete(c *gin.Context) {
	brandID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

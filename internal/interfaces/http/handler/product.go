package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/vietcart/backend/internal/application/catalog"
	"github.com/vietcart/backend/internal/interfaces/http/middleware"
)

// maxProductImageSize bounds uploaded image bodies (5 MiB)
const maxProductImageSize = 5 << 20

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProductsRequest carries the public listing query parameters
type ListProductsRequest struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	BrandID    string `form:"brand_id" binding:"omitempty,uuid"`
	MinPrice   string `form:"min_price" binding:"omitempty,numeric"`
	MaxPrice   string `form:"max_price" binding:"omitempty,numeric"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// List handles GET /products. Staff see inactive products too.
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalogapp.ListProductsInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	if req.CategoryID != "" {
		id, _ := uuid.Parse(req.CategoryID)
		input.CategoryID = &id
	}
	if req.BrandID != "" {
		id, _ := uuid.Parse(req.BrandID)
		input.BrandID = &id
	}
	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			h.BadRequest(c, "Invalid min_price")
			return
		}
		input.MinPrice = &min
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			h.BadRequest(c, "Invalid max_price")
			return
		}
		input.MaxPrice = &max
	}

	switch middleware.GetRole(c) {
	case "staff", "admin":
		input.IncludeInactive = c.Query("include_inactive") == "true"
	}

	page, err := h.productService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetByCode handles GET /products/code/:code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Product code is required")
		return
	}

	product, err := h.productService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create handles POST /products (staff)
func (h *ProductHandler) Create(c *gin.Context) {
	var input catalogapp.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update handles PUT /products/:id (staff)
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var input catalogapp.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.ProductID = productID

	product, err := h.productService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /products/:id (staff). Products are soft deleted so
// existing order lines keep their reference.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore handles POST /products/:id/restore (staff)
func (h *ProductHandler) Restore(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Activate(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UploadImage handles POST /products/:id/image (staff, multipart form)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}
	if fileHeader.Size > maxProductImageSize {
		h.BadRequest(c, "Image exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	product, err := h.productService.UploadImage(c.Request.Context(), productID, fileHeader.Filename, contentType, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

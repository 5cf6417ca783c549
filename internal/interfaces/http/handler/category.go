package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/vietcart/backend/internal/application/catalog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Tree handles GET /categories. The whole catalog tree is small enough to
// return in one response.
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tree)
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// GetBySlug handles GET /categories/slug/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Category slug is required")
		return
	}

	category, err := h.categoryService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Create handles POST /categories (staff)
func (h *CategoryHandler) Create(c *gin.Context) {
	var input catalogapp.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// Update handles PUT /categories/:id (staff)
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var input catalogapp.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.CategoryID = categoryID

	category, err := h.categoryService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete handles DELETE /categories/:id (staff). Categories referenced by
// products or child categories cannot be deleted.
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

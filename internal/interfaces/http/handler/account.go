package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/vietcart/backend/internal/application/identity"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/interfaces/http/dto"
)

// AccountHandler handles profile and admin account management endpoints
type AccountHandler struct {
	BaseHandler
	accountService *identityapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *identityapp.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetProfile handles GET /users/me
func (h *AccountHandler) GetProfile(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.accountService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateProfile handles PUT /users/me
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input identityapp.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.AccountID = accountID

	profile, err := h.accountService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// ChangePassword handles PUT /users/me/password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input identityapp.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.AccountID = accountID

	if err := h.accountService.ChangePassword(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /users (admin)
func (h *AccountHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.accountService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ChangeRoleRequest is the admin role-change body
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user staff admin"`
}

// ChangeRole handles PUT /users/:id/role (admin)
func (h *AccountHandler) ChangeRole(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accountService.ChangeRole(c.Request.Context(), accountID, identity.Role(req.Role)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate handles DELETE /users/:id (admin)
func (h *AccountHandler) Deactivate(c *gin.Context) {
	accountID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.Deactivate(c.Request.Context(), accountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/vietcart/backend/internal/application/identity"
)

// AuthHandler handles registration, login and the OAuth flow
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input identityapp.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GoogleLogin handles GET /auth/google/login. It returns the consent URL so
// the frontend can redirect the buyer to Google.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		state = uuid.New().String()
	}

	h.Success(c, gin.H{
		"url":   h.authService.GoogleLoginURL(state),
		"state": state,
	})
}

// GoogleCallback handles GET /auth/google/callback. On success the buyer is
// redirected to the frontend with the token pair in the URL fragment, which
// keeps tokens out of server logs and referrer headers.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var input identityapp.GoogleCallbackInput
	if err := c.ShouldBindQuery(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.GoogleCallback(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", result.AccessToken)
	fragment.Set("refresh_token", result.RefreshToken)
	fragment.Set("token_type", result.TokenType)

	c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback#"+fragment.Encode())
}

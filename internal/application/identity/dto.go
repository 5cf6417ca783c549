package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/identity"
)

// RegisterInput contains input for local account registration
type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
}

// LoginInput contains input for local login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput contains input for token refresh
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// GoogleCallbackInput contains the OAuth callback parameters
type GoogleCallbackInput struct {
	Code  string `form:"code" binding:"required"`
	State string `form:"state"`
}

// ChangePasswordInput contains input for a password change
type ChangePasswordInput struct {
	AccountID   uuid.UUID `json:"-"`
	OldPassword string    `json:"old_password"`
	NewPassword string    `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileInput contains input for a profile update
type UpdateProfileInput struct {
	AccountID uuid.UUID `json:"-"`
	Name      string    `json:"name" binding:"required,max=100"`
	Phone     string    `json:"phone" binding:"omitempty,max=20"`
}

// AccountInfo is the account projection returned to clients
type AccountInfo struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult is returned from login, register and the OAuth callback
type AuthResult struct {
	AccessToken           string      `json:"access_token"`
	RefreshToken          string      `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
	TokenType             string      `json:"token_type"`
	Account               AccountInfo `json:"account"`
}

// RefreshTokenResult is returned from a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// CreateAddressInput contains input for creating a shipping address
type CreateAddressInput struct {
	AccountID      uuid.UUID `json:"-"`
	RecipientName  string    `json:"recipient_name" binding:"required,max=100"`
	RecipientPhone string    `json:"recipient_phone" binding:"required,max=20"`
	Street         string    `json:"street" binding:"required,max=255"`
	Ward           string    `json:"ward" binding:"omitempty,max=100"`
	District       string    `json:"district" binding:"required,max=100"`
	City           string    `json:"city" binding:"required,max=100"`
	IsDefault      bool      `json:"is_default"`
}

// UpdateAddressInput contains input for updating a shipping address
type UpdateAddressInput struct {
	AccountID      uuid.UUID `json:"-"`
	AddressID      uuid.UUID `json:"-"`
	RecipientName  string    `json:"recipient_name" binding:"required,max=100"`
	RecipientPhone string    `json:"recipient_phone" binding:"required,max=20"`
	Street         string    `json:"street" binding:"required,max=255"`
	Ward           string    `json:"ward" binding:"omitempty,max=100"`
	District       string    `json:"district" binding:"required,max=100"`
	City           string    `json:"city" binding:"required,max=100"`
}

// AddressInfo is the address projection returned to clients
type AddressInfo struct {
	ID             uuid.UUID `json:"id"`
	RecipientName  string    `json:"recipient_name"`
	RecipientPhone string    `json:"recipient_phone"`
	Street         string    `json:"street"`
	Ward           string    `json:"ward,omitempty"`
	District       string    `json:"district"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	FullLine       string    `json:"full_line"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

func toAccountInfo(a *identity.Account) AccountInfo {
	return AccountInfo{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      string(a.Role),
		Status:    string(a.Status),
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLoginAt,
	}
}

func toAddressInfo(a *identity.Address) AddressInfo {
	return AddressInfo{
		ID:             a.ID,
		RecipientName:  a.RecipientName,
		RecipientPhone: a.RecipientPhone,
		Street:         a.Street,
		Ward:           a.Ward,
		District:       a.District,
		City:           a.City,
		Country:        a.Country,
		FullLine:       a.FullLine(),
		IsDefault:      a.IsDefault,
		CreatedAt:      a.CreatedAt,
	}
}

package identity

import (
	"strings"
	"time"

	"github.com/vietcart/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents an account role
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus represents the status of an account
type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "active"
	AccountStatusDeactivated AccountStatus = "deactivated"
)

// Account represents a storefront customer or staff account
// It is the aggregate root for authentication and profile operations
type Account struct {
	shared.BaseAggregateRoot
	Name         string        `gorm:"type:varchar(100);not null"`
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(100)"` // empty for Google-only accounts
	Phone        string        `gorm:"type:varchar(20)"`
	Role         Role          `gorm:"type:varchar(20);not null;default:'user'"`
	Status       AccountStatus `gorm:"type:varchar(20);not null;default:'active'"`
	GoogleID     *string       `gorm:"type:varchar(64);uniqueIndex"`
	AvatarURL    string        `gorm:"type:varchar(500)"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new local account with a bcrypt-hashed password
func NewAccount(name, email, password, phone string) (*Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Phone:             phone,
		Role:              RoleUser,
		Status:            AccountStatusActive,
	}

	account.AddDomainEvent(NewAccountRegisteredEvent(account))

	return account, nil
}

// NewGoogleAccount creates an account from a Google OAuth profile.
// Google accounts have no local password until one is set explicitly.
func NewGoogleAccount(name, email, googleID, avatarURL string) (*Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if googleID == "" {
		return nil, shared.NewDomainError("INVALID_GOOGLE_ID", "Google subject cannot be empty")
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Role:              RoleUser,
		Status:            AccountStatusActive,
		GoogleID:          &googleID,
		AvatarURL:         avatarURL,
	}

	account.AddDomainEvent(NewAccountRegisteredEvent(account))

	return account, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (a *Account) VerifyPassword(password string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password and sets a new one
func (a *Account) ChangePassword(oldPassword, newPassword string) error {
	if a.PasswordHash != "" && !a.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}

	a.PasswordHash = string(hash)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// UpdateProfile updates the account's display name and phone
func (a *Account) UpdateProfile(name, phone string) error {
	if err := validateName(name); err != nil {
		return err
	}

	a.Name = name
	a.Phone = phone
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// LinkGoogle attaches a Google subject to an existing local account
func (a *Account) LinkGoogle(googleID, avatarURL string) error {
	if googleID == "" {
		return shared.NewDomainError("INVALID_GOOGLE_ID", "Google subject cannot be empty")
	}
	if a.GoogleID != nil && *a.GoogleID != googleID {
		return shared.NewDomainError("ALREADY_EXISTS", "Account is linked to a different Google identity")
	}

	a.GoogleID = &googleID
	if avatarURL != "" {
		a.AvatarURL = avatarURL
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// ChangeRole changes the account role
func (a *Account) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	a.Role = role
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Deactivate disables the account
func (a *Account) Deactivate() {
	a.Status = AccountStatusDeactivated
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Activate re-enables the account
func (a *Account) Activate() {
	a.Status = AccountStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// CanLogin reports whether the account may authenticate
func (a *Account) CanLogin() bool {
	return a.Status == AccountStatusActive
}

// IsStaff reports whether the account has staff or admin privileges
func (a *Account) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}

// RecordLogin stamps the last successful login time
func (a *Account) RecordLogin() {
	now := time.Now()
	a.LastLoginAt = &now
	a.UpdatedAt = now
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

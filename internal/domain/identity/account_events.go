package identity

import "github.com/vietcart/backend/internal/domain/shared"

// Event types for the identity context
const (
	EventTypeAccountRegistered = "identity.account.registered"
)

// AccountRegisteredEvent is published when a new account is created
type AccountRegisteredEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewAccountRegisteredEvent creates a new AccountRegisteredEvent
func NewAccountRegisteredEvent(account *Account) *AccountRegisteredEvent {
	return &AccountRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountRegistered, "Account", account.ID),
		Email:           account.Email,
		Role:            account.Role,
	}
}

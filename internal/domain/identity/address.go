package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/shared"
)

// Address represents a shipping address belonging to an account.
// Invariant: at most one address per account has IsDefault set; the
// repository enforces this transactionally on SetDefault.
type Address struct {
	shared.BaseAggregateRoot
	AccountID      uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipientName  string    `gorm:"type:varchar(100);not null"`
	RecipientPhone string    `gorm:"type:varchar(20);not null"`
	Street         string    `gorm:"type:varchar(255);not null"`
	Ward           string    `gorm:"type:varchar(100)"`
	District       string    `gorm:"type:varchar(100);not null"`
	City           string    `gorm:"type:varchar(100);not null"`
	Country        string    `gorm:"type:varchar(100);not null;default:'Việt Nam'"`
	IsDefault      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new shipping address for an account
func NewAddress(accountID uuid.UUID, recipientName, recipientPhone, street, ward, district, city string) (*Address, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if err := validateAddressFields(recipientName, recipientPhone, street, district, city); err != nil {
		return nil, err
	}

	return &Address{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		RecipientName:     strings.TrimSpace(recipientName),
		RecipientPhone:    strings.TrimSpace(recipientPhone),
		Street:            strings.TrimSpace(street),
		Ward:              strings.TrimSpace(ward),
		District:          strings.TrimSpace(district),
		City:              strings.TrimSpace(city),
		Country:           "Việt Nam",
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(recipientName, recipientPhone, street, ward, district, city string) error {
	if err := validateAddressFields(recipientName, recipientPhone, street, district, city); err != nil {
		return err
	}

	a.RecipientName = strings.TrimSpace(recipientName)
	a.RecipientPhone = strings.TrimSpace(recipientPhone)
	a.Street = strings.TrimSpace(street)
	a.Ward = strings.TrimSpace(ward)
	a.District = strings.TrimSpace(district)
	a.City = strings.TrimSpace(city)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// FullLine returns the address as a single display line
func (a *Address) FullLine() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Ward, a.District, a.City, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func validateAddressFields(recipientName, recipientPhone, street, district, city string) error {
	if strings.TrimSpace(recipientName) == "" {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient name cannot be empty")
	}
	if strings.TrimSpace(recipientPhone) == "" {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient phone cannot be empty")
	}
	if strings.TrimSpace(street) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Street address cannot be empty")
	}
	if strings.TrimSpace(district) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "District cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	return nil
}

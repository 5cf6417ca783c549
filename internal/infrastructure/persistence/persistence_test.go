package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/order"
	"github.com/vietcart/backend/internal/domain/payment"
	"github.com/vietcart/backend/internal/domain/shopping"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.Account{},
		&identity.Address{},
		&catalog.Brand{},
		&catalog.Category{},
		&catalog.Product{},
		&shopping.Cart{},
		&shopping.CartItem{},
		&order.Order{},
		&order.Item{},
		&payment.Transaction{},
	)
	require.NoError(t, err)

	return db
}

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"github.com/vietcart/backend/internal/domain/shopping"
)

func TestCartSaveReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)

	phoneID := uuid.New()
	caseID := uuid.New()
	require.NoError(t, cart.AddItem(phoneID, 1, valueobject.NewMoneyVNDFromInt(25000000)))
	require.NoError(t, cart.AddItem(caseID, 2, valueobject.NewMoneyVNDFromInt(150000)))
	require.NoError(t, repo.Save(ctx, cart))

	// Remove one line and save again; the row must disappear
	require.NoError(t, cart.RemoveItem(caseID))
	require.NoError(t, repo.Save(ctx, cart))

	loaded, err := repo.FindByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, phoneID, loaded.Items[0].ProductID)
	assert.Equal(t, 1, loaded.Items[0].Quantity)
}

func TestCartFindByAccountMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	_, err := repo.FindByAccount(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCartDeleteItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	cart, err := shopping.NewCart(uuid.New())
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(uuid.New(), 3, valueobject.NewMoneyVNDFromInt(500000)))
	require.NoError(t, repo.Save(ctx, cart))

	require.NoError(t, repo.DeleteItems(ctx, cart.ID))

	loaded, err := repo.FindByAccount(ctx, cart.AccountID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}

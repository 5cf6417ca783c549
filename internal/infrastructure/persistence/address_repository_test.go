package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/identity"
	"github.com/vietcart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

func seedAddress(t *testing.T, db *gorm.DB, accountID uuid.UUID, street string, isDefault bool) *identity.Address {
	t.Helper()
	a, err := identity.NewAddress(accountID, "Nguyễn Văn A", "0901234567", street, "Bến Nghé", "Quận 1", "TP.HCM")
	require.NoError(t, err)
	a.IsDefault = isDefault
	require.NoError(t, db.Save(a).Error)
	return a
}

func TestSetDefaultClearsPreviousDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	first := seedAddress(t, db, accountID, "1 Lê Lợi", true)
	second := seedAddress(t, db, accountID, "2 Hai Bà Trưng", false)

	require.NoError(t, repo.SetDefault(ctx, accountID, second.ID))

	addresses, err := repo.FindAllForAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	_ = first
}

func TestSetDefaultForeignAddressRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	address := seedAddress(t, db, owner, "1 Lê Lợi", true)

	err := repo.SetDefault(ctx, other, address.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Owner's default must be untouched
	reloaded, err := repo.FindByID(ctx, address.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsDefault)
}

func TestFindByIDForAccountScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	address := seedAddress(t, db, owner, "1 Lê Lợi", false)

	found, err := repo.FindByIDForAccount(ctx, owner, address.ID)
	require.NoError(t, err)
	assert.Equal(t, address.ID, found.ID)

	_, err = repo.FindByIDForAccount(ctx, uuid.New(), address.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteScopedToAccount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	address := seedAddress(t, db, owner, "1 Lê Lợi", false)

	err := repo.Delete(ctx, uuid.New(), address.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, owner, address.ID))

	count, err := repo.CountForAccount(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindAllForAccountDefaultFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	seedAddress(t, db, accountID, "1 Lê Lợi", false)
	def := seedAddress(t, db, accountID, "2 Hai Bà Trưng", true)

	addresses, err := repo.FindAllForAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, def.ID, addresses[0].ID)
}

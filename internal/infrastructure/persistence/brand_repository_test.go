package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection over sqlmock with the MySQL dialect
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestBrandDeleteReferencedByProducts(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormBrandRepository(gormDB)

	brandID := uuid.New()
	mock.ExpectExec("DELETE FROM `brands`").
		WithArgs(brandID).
		WillReturnError(&driver.MySQLError{Number: mysqlErrRowIsReferenced, Message: "Cannot delete or update a parent row"})

	err := repo.Delete(context.Background(), brandID)
	assert.ErrorIs(t, err, shared.ErrReferenced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryDeleteReferencedByChildren(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCategoryRepository(gormDB)

	categoryID := uuid.New()
	mock.ExpectExec("DELETE FROM `categories`").
		WithArgs(categoryID).
		WillReturnError(&driver.MySQLError{Number: mysqlErrRowIsReferenced, Message: "Cannot delete or update a parent row"})

	err := repo.Delete(context.Background(), categoryID)
	assert.ErrorIs(t, err, shared.ErrReferenced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrandCRUDRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBrandRepository(db)
	ctx := context.Background()

	brand, err := catalog.NewBrand("Samsung", "https://cdn.example/samsung.png")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, brand))

	byName, err := repo.FindByName(ctx, "Samsung")
	require.NoError(t, err)
	assert.Equal(t, brand.ID, byName.ID)

	dup, err := catalog.NewBrand("Samsung", "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)

	require.NoError(t, repo.Delete(ctx, brand.ID))
	_, err = repo.FindByID(ctx, brand.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryTreeQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	root, err := catalog.NewCategory("Điện tử", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, root))

	child, err := catalog.NewCategory("Điện thoại", &root.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, child))

	bySlug, err := repo.FindBySlug(ctx, "dien-thoai")
	require.NoError(t, err)
	assert.Equal(t, child.ID, bySlug.ID)

	children, err := repo.FindChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductPriceRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p, err := catalog.NewProduct("IP15", "Điện thoại iPhone 15", valueobject.NewMoneyVNDFromInt(25000000), 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.FindByCode(ctx, "ip15")
	require.NoError(t, err)
	assert.True(t, loaded.Price.Equal(p.Price))
	assert.Equal(t, "dien thoai iphone 15", loaded.SearchName)
}

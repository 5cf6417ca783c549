package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"github.com/vietcart/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*catalog.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if c := args.Get(0); c != nil {
		return c.(*catalog.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBrandRepo struct {
	mock.Mock
}

func (m *mockBrandRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*catalog.Brand), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBrandRepo) FindByName(ctx context.Context, name string) (*catalog.Brand, error) {
	args := m.Called(ctx, name)
	if b := args.Get(0); b != nil {
		return b.(*catalog.Brand), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBrandRepo) FindAll(ctx context.Context) ([]catalog.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *mockBrandRepo) Save(ctx context.Context, brand *catalog.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newProductService(products *mockProductRepo, categories *mockCategoryRepo, brands *mockBrandRepo, storage *mockStorage) *ProductService {
	return NewProductService(products, categories, brands, storage, zap.NewNop())
}

func TestCreateProduct(t *testing.T) {
	products := new(mockProductRepo)
	svc := newProductService(products, new(mockCategoryRepo), new(mockBrandRepo), new(mockStorage))

	products.On("FindByCode", mock.Anything, "SP-001").Return(nil, shared.ErrNotFound)
	products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	info, err := svc.Create(context.Background(), CreateProductInput{
		Code:     "sp-001",
		Name:     "Điện thoại XYZ",
		Price:    decimal.NewFromInt(4990000),
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "SP-001", info.Code)
	assert.Equal(t, "active", info.Status)
	assert.True(t, info.Price.Equal(decimal.NewFromInt(4990000)))
}

func TestCreateProductDuplicateCode(t *testing.T) {
	products := new(mockProductRepo)
	svc := newProductService(products, new(mockCategoryRepo), new(mockBrandRepo), new(mockStorage))

	existing, err := catalog.NewProduct("SP-001", "Cũ", valueobject.NewMoneyVNDFromInt(100), 1)
	require.NoError(t, err)
	products.On("FindByCode", mock.Anything, "SP-001").Return(existing, nil)

	_, err = svc.Create(context.Background(), CreateProductInput{
		Code:  "SP-001",
		Name:  "Mới",
		Price: decimal.NewFromInt(100),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	products := new(mockProductRepo)
	categories := new(mockCategoryRepo)
	svc := newProductService(products, categories, new(mockBrandRepo), new(mockStorage))

	categoryID := uuid.New()
	products.On("FindByCode", mock.Anything, "SP-002").Return(nil, shared.ErrNotFound)
	categories.On("FindByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), CreateProductInput{
		Code:       "SP-002",
		Name:       "Tai nghe",
		Price:      decimal.NewFromInt(200000),
		CategoryID: &categoryID,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestListProductsFoldsSearch(t *testing.T) {
	products := new(mockProductRepo)
	svc := newProductService(products, new(mockCategoryRepo), new(mockBrandRepo), new(mockStorage))

	products.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "dien thoai" && f.Filters["status"] == "active"
	})).Return([]catalog.Product{}, nil)
	products.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.List(context.Background(), ListProductsInput{Search: "Điện Thoại"})
	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestDeleteProductIdempotent(t *testing.T) {
	products := new(mockProductRepo)
	svc := newProductService(products, new(mockCategoryRepo), new(mockBrandRepo), new(mockStorage))

	product, err := catalog.NewProduct("SP-003", "Loa", valueobject.NewMoneyVNDFromInt(100), 1)
	require.NoError(t, err)
	product.Deactivate()
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUploadImageReplacesOld(t *testing.T) {
	products := new(mockProductRepo)
	storage := new(mockStorage)
	svc := newProductService(products, new(mockCategoryRepo), new(mockBrandRepo), storage)

	product, err := catalog.NewProduct("SP-004", "Bàn phím", valueobject.NewMoneyVNDFromInt(100), 1)
	require.NoError(t, err)
	product.SetImage("products/old-key.jpg", "https://cdn.example/old.jpg")

	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("Save", mock.Anything, product).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("https://cdn.example/new.jpg", nil)
	storage.On("Delete", mock.Anything, "products/old-key.jpg").Return(nil)

	info, err := svc.UploadImage(context.Background(), product.ID, "photo.jpg", "image/jpeg", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/new.jpg", info.ImageURL)
	storage.AssertExpectations(t)
}

func TestCategoryTree(t *testing.T) {
	categories := new(mockCategoryRepo)
	svc := NewCategoryService(categories, zap.NewNop())

	root, err := catalog.NewCategory("Điện tử", nil)
	require.NoError(t, err)
	child, err := catalog.NewCategory("Điện thoại", &root.ID)
	require.NoError(t, err)

	categories.On("FindAll", mock.Anything).Return([]catalog.Category{*root, *child}, nil)

	tree, err := svc.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "dien-tu", tree[0].Slug)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "dien-thoai", tree[0].Children[0].Slug)
}

func TestCategoryMoveUnderDescendantRejected(t *testing.T) {
	categories := new(mockCategoryRepo)
	svc := NewCategoryService(categories, zap.NewNop())

	root, err := catalog.NewCategory("Gốc", nil)
	require.NoError(t, err)
	child, err := catalog.NewCategory("Con", &root.ID)
	require.NoError(t, err)

	categories.On("FindByID", mock.Anything, root.ID).Return(root, nil)
	categories.On("FindByID", mock.Anything, child.ID).Return(child, nil)

	_, err = svc.Update(context.Background(), UpdateCategoryInput{
		CategoryID: root.ID,
		Name:       "Gốc",
		ParentID:   &child.ID,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_PARENT", domainErr.Code)
}

func TestBrandDeleteReferenced(t *testing.T) {
	brands := new(mockBrandRepo)
	svc := NewBrandService(brands, zap.NewNop())

	brand, err := catalog.NewBrand("Samsung", "")
	require.NoError(t, err)
	brands.On("FindByID", mock.Anything, brand.ID).Return(brand, nil)
	brands.On("Delete", mock.Anything, brand.ID).Return(shared.ErrReferenced)

	err = svc.Delete(context.Background(), brand.ID)
	assert.ErrorIs(t, err, shared.ErrReferenced)
}

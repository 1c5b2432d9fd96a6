package service

import (
	"context"
	"sync"
	"testing"

	"github.com/example/bookshop/pkg/models"
	"github.com/example/bookshop/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductStore struct {
	mu         sync.Mutex
	store      map[string]*models.Product
	lastFilter repository.ProductFilter
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{store: make(map[string]*models.Product)}
}

func (m *mockProductStore) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *product
	m.store[product.ID] = &cp
	return nil
}

func (m *mockProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.store[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *product
	return &cp, nil
}

func (m *mockProductStore) Update(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[product.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *product
	m.store[product.ID] = &cp
	return nil
}

func (m *mockProductStore) List(_ context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter

	var list []models.Product
	for _, p := range m.store {
		list = append(list, *p)
	}
	return list, int64(len(list)), nil
}

func (m *mockProductStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func setupCatalog(t *testing.T) (*CatalogService, *mockProductStore) {
	t.Helper()
	store := newMockProductStore()
	return NewCatalogService(store, nil, nil, zap.NewNop()), store
}

func TestCreateProduct(t *testing.T) {
	t.Run("Success with Drive link rewritten", func(t *testing.T) {
		svc, store := setupCatalog(t)

		product, err := svc.Create(context.Background(), ProductInput{
			Title:    "Science Workbook",
			Price:    450,
			Category: "Workbooks",
			Subject:  "Science",
			Image:    "https://drive.google.com/file/d/xyz_987/view",
		}, "admin@bookshop.example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://drive.google.com/uc?export=view&id=xyz_987", product.Image)
		assert.True(t, product.InStock)
		assert.Contains(t, store.store, product.ID)
	})

	t.Run("Missing title", func(t *testing.T) {
		svc, _ := setupCatalog(t)

		_, err := svc.Create(context.Background(), ProductInput{Price: 100}, "admin@bookshop.example.com")

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("Negative price", func(t *testing.T) {
		svc, _ := setupCatalog(t)

		_, err := svc.Create(context.Background(), ProductInput{Title: "X", Price: -1}, "admin@bookshop.example.com")

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestUpdateProduct(t *testing.T) {
	svc, store := setupCatalog(t)
	product, err := svc.Create(context.Background(), ProductInput{Title: "English Reader", Price: 300}, "admin@bookshop.example.com")
	require.NoError(t, err)

	t.Run("Applies changes", func(t *testing.T) {
		inStock := false
		updated, err := svc.Update(context.Background(), product.ID, ProductInput{
			Title:    "English Reader (2nd ed)",
			Price:    350,
			Featured: true,
			InStock:  &inStock,
		}, "admin@bookshop.example.com")

		require.NoError(t, err)
		assert.Equal(t, "English Reader (2nd ed)", updated.Title)
		assert.True(t, updated.Featured)
		assert.False(t, updated.InStock)
		assert.Equal(t, 350.0, store.store[product.ID].Price)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "missing", ProductInput{Title: "X"}, "admin@bookshop.example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListProducts(t *testing.T) {
	svc, store := setupCatalog(t)
	featured := true

	_, pagination, err := svc.List(context.Background(), ListProductsInput{
		Category: "Textbooks",
		Subject:  "Math",
		Featured: &featured,
		Page:     2,
		Limit:    12,
	})

	require.NoError(t, err)
	assert.Equal(t, "Textbooks", store.lastFilter.Category)
	assert.Equal(t, "Math", store.lastFilter.Subject)
	require.NotNil(t, store.lastFilter.Featured)
	assert.True(t, *store.lastFilter.Featured)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 12, pagination.Limit)
}

func TestGetProductFromCache(t *testing.T) {
	store := newMockProductStore()
	cache := newFakeProductCache()
	svc := NewCatalogService(store, cache, nil, zap.NewNop())

	product, err := svc.Create(context.Background(), ProductInput{Title: "Atlas", Price: 900}, "admin@bookshop.example.com")
	require.NoError(t, err)

	// First read fills the cache, second read is served from it.
	first, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)
	require.True(t, cache.has(product.ID))

	second, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Price, second.Price)

	t.Run("Update evicts", func(t *testing.T) {
		_, err := svc.Update(context.Background(), product.ID, ProductInput{Title: "Atlas", Price: 950}, "admin@bookshop.example.com")
		require.NoError(t, err)
		assert.False(t, cache.has(product.ID))

		got, err := svc.Get(context.Background(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, 950.0, got.Price)
	})
}

func TestDeleteProduct(t *testing.T) {
	svc, store := setupCatalog(t)
	product, err := svc.Create(context.Background(), ProductInput{Title: "Urdu Qaida", Price: 150}, "admin@bookshop.example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), product.ID, "admin@bookshop.example.com"))
	assert.Empty(t, store.store)

	assert.ErrorIs(t, svc.Delete(context.Background(), product.ID, "admin@bookshop.example.com"), repository.ErrNotFound)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/bookshop/pkg/mailer"
	"github.com/example/bookshop/pkg/models"
	"github.com/example/bookshop/pkg/repository"
)

// mockOrderStore is a map-backed OrderStore that mirrors the SQL semantics
// the gorm store relies on, including the unique index on order_number.
type mockOrderStore struct {
	mu          sync.Mutex
	store       map[string]*models.Order
	failCreates int // force this many duplicate-key errors before succeeding
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{store: make(map[string]*models.Order)}
}

func (m *mockOrderStore) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreates > 0 {
		m.failCreates--
		return repository.ErrDuplicateOrderNumber
	}
	for _, existing := range m.store {
		if existing.OrderNumber == order.OrderNumber {
			return repository.ErrDuplicateOrderNumber
		}
	}

	cp := *order
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
	}
	m.store[order.ID] = &cp
	return nil
}

func (m *mockOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.store[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockOrderStore) UpdateFields(_ context.Context, id string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.store[id]
	if !ok {
		return repository.ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "status":
			order.Status = value.(models.OrderStatus)
		case "admin_notes":
			order.AdminNotes = value.(string)
		case "tracking_number":
			order.TrackingNumber = value.(string)
		case "delivery_date":
			t := value.(time.Time)
			order.DeliveryDate = &t
		case "updated_at":
			order.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (m *mockOrderStore) List(_ context.Context, filter repository.OrderFilter) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Order
	for _, order := range m.store {
		if matches(order, filter) {
			matched = append(matched, *order)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matches(order *models.Order, filter repository.OrderFilter) bool {
	if filter.Email != "" {
		return order.ShippingEmail == filter.Email
	}
	if filter.Status != "" && filter.Status != "all" && string(order.Status) != filter.Status {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystacks := []string{order.OrderNumber, order.ShippingName, order.ShippingEmail, order.ShippingPhone}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				return true
			}
		}
		return false
	}
	return true
}

func (m *mockOrderStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

var errCacheMiss = errors.New("cache miss")

// fakeOrderCache mirrors the redis cache faithfully: entries round-trip
// through encoding/json exactly as SetJSON/GetJSON do, so anything the
// marshaled form drops is dropped here too.
type fakeOrderCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newFakeOrderCache() *fakeOrderCache {
	return &fakeOrderCache{entries: make(map[string][]byte)}
}

func (f *fakeOrderCache) CacheOrder(_ context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[order.ID] = data
	return nil
}

func (f *fakeOrderCache) GetOrder(_ context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.entries[id]
	if !ok {
		return nil, errCacheMiss
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	f.hits++
	return &order, nil
}

func (f *fakeOrderCache) InvalidateOrder(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}

func (f *fakeOrderCache) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[id]
	return ok
}

// fakeProductCache is the product counterpart of fakeOrderCache.
type fakeProductCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: make(map[string][]byte)}
}

func (f *fakeProductCache) CacheProduct(_ context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[product.ID] = data
	return nil
}

func (f *fakeProductCache) GetProduct(_ context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.entries[id]
	if !ok {
		return nil, errCacheMiss
	}
	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	f.hits++
	return &product, nil
}

func (f *fakeProductCache) InvalidateProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}

func (f *fakeProductCache) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[id]
	return ok
}

// recorderMailer records every dispatch and can be told to fail.
type recorderMailer struct {
	mu   sync.Mutex
	sent []mailer.Kind
	err  error
}

func (r *recorderMailer) Send(_ context.Context, kind mailer.Kind, _ *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, kind)
	return r.err
}

func (r *recorderMailer) Sent() []mailer.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Kind(nil), r.sent...)
}

func (r *recorderMailer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

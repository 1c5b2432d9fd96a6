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

type mockAnnouncementStore struct {
	mu         sync.Mutex
	store      map[string]*models.Announcement
	lastFilter repository.AnnouncementFilter
}

func newMockAnnouncementStore() *mockAnnouncementStore {
	return &mockAnnouncementStore{store: make(map[string]*models.Announcement)}
}

func (m *mockAnnouncementStore) Create(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *mockAnnouncementStore) FindByID(_ context.Context, id string) (*models.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAnnouncementStore) Update(_ context.Context, a *models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *mockAnnouncementStore) List(_ context.Context, filter repository.AnnouncementFilter) ([]models.Announcement, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	var out []models.Announcement
	for _, a := range m.store {
		if filter.Featured != nil && a.Featured != *filter.Featured {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (m *mockAnnouncementStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func setupAnnouncements(t *testing.T) (*AnnouncementService, *mockAnnouncementStore) {
	t.Helper()
	store := newMockAnnouncementStore()
	return NewAnnouncementService(store, nil, zap.NewNop()), store
}

func TestCreateAnnouncement(t *testing.T) {
	t.Run("Success with Drive link rewritten", func(t *testing.T) {
		svc, store := setupAnnouncements(t)

		a, err := svc.Create(context.Background(), AnnouncementInput{
			Title:    "Winter sale",
			Content:  "Flat 20% on all workbooks",
			Image:    "https://drive.google.com/file/d/banner_01/view",
			Featured: true,
		}, "admin@bookshop.example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://drive.google.com/uc?export=view&id=banner_01", a.Image)
		assert.True(t, a.Featured)
		assert.Contains(t, store.store, a.ID)
	})

	t.Run("Missing title", func(t *testing.T) {
		svc, _ := setupAnnouncements(t)

		_, err := svc.Create(context.Background(), AnnouncementInput{Content: "no title"}, "admin@bookshop.example.com")

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestUpdateAnnouncement(t *testing.T) {
	svc, store := setupAnnouncements(t)
	a, err := svc.Create(context.Background(), AnnouncementInput{Title: "New arrivals"}, "admin@bookshop.example.com")
	require.NoError(t, err)

	t.Run("Applies changes", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), a.ID, AnnouncementInput{
			Title:    "New arrivals for Grade 5",
			Content:  "Now in stock",
			Featured: true,
		}, "admin@bookshop.example.com")

		require.NoError(t, err)
		assert.Equal(t, "New arrivals for Grade 5", updated.Title)
		assert.True(t, store.store[a.ID].Featured)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "missing", AnnouncementInput{Title: "X"}, "admin@bookshop.example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestListAnnouncements(t *testing.T) {
	svc, store := setupAnnouncements(t)
	featured := true

	_, pagination, err := svc.List(context.Background(), ListAnnouncementsInput{
		Search:   "sale",
		Featured: &featured,
		Page:     3,
		Limit:    5,
	})

	require.NoError(t, err)
	assert.Equal(t, "sale", store.lastFilter.Search)
	require.NotNil(t, store.lastFilter.Featured)
	assert.True(t, *store.lastFilter.Featured)
	assert.Equal(t, 3, pagination.Page)
	assert.Equal(t, 5, pagination.Limit)
}

func TestDeleteAnnouncement(t *testing.T) {
	svc, store := setupAnnouncements(t)
	a, err := svc.Create(context.Background(), AnnouncementInput{Title: "Closing early on Friday"}, "admin@bookshop.example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), a.ID, "admin@bookshop.example.com"))
	assert.Empty(t, store.store)

	assert.ErrorIs(t, svc.Delete(context.Background(), a.ID, "admin@bookshop.example.com"), repository.ErrNotFound)
}

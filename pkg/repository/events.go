package repository

import (
	"context"

	"github.com/example/bookshop/pkg/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type EventFilter struct {
	Search   string
	Category string
	Status   string
	Page     int
	Limit    int
}

type EventStore interface {
	Create(ctx context.Context, e *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error)
	Delete(ctx context.Context, id string) error
}

type eventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) EventStore {
	return &eventStore{db: db}
}

func (s *eventStore) Create(ctx context.Context, e *models.Event) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(e).Error, "create event")
}

func (s *eventStore) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find event")
	}
	return &e, nil
}

func (s *eventStore) Update(ctx context.Context, e *models.Event) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", e.ID).
		Select("*").Omit("id", "created_at").Updates(e)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update event")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *eventStore) List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count events")
	}

	offset := (filter.Page - 1) * filter.Limit
	var list []models.Event
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&list).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list events")
	}
	return list, total, nil
}

func (s *eventStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete event")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/example/bookshop/pkg/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AnnouncementFilter struct {
	Search   string
	Featured *bool
	Page     int
	Limit    int
}

type AnnouncementStore interface {
	Create(ctx context.Context, a *models.Announcement) error
	FindByID(ctx context.Context, id string) (*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error)
	Delete(ctx context.Context, id string) error
}

type announcementStore struct {
	db *gorm.DB
}

func NewAnnouncementStore(db *gorm.DB) AnnouncementStore {
	return &announcementStore{db: db}
}

func (s *announcementStore) Create(ctx context.Context, a *models.Announcement) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(a).Error, "create announcement")
}

func (s *announcementStore) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	var a models.Announcement
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find announcement")
	}
	return &a, nil
}

func (s *announcementStore) Update(ctx context.Context, a *models.Announcement) error {
	res := s.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", a.ID).
		Select("*").Omit("id", "created_at").Updates(a)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update announcement")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *announcementStore) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count announcements")
	}

	offset := (filter.Page - 1) * filter.Limit
	var list []models.Announcement
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&list).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list announcements")
	}
	return list, total, nil
}

func (s *announcementStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Announcement{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete announcement")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

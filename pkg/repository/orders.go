package repository

import (
	"context"

	"github.com/example/bookshop/pkg/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// OrderFilter narrows an order listing. Email takes precedence: when set,
// Status and Search are ignored (customer self-service mode).
type OrderFilter struct {
	Status string // exact match; "" or "all" means no filter
	Search string // case-insensitive match on order number, name, email, phone
	Email  string // exact match on shipping email
	Page   int
	Limit  int
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	Delete(ctx context.Context, id string) error
}

type orderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) OrderStore {
	return &orderStore{db: db}
}

func (s *orderStore) Create(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOrderNumber
		}
		return errors.Wrap(err, "create order")
	}
	return nil
}

func (s *orderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "find order")
	}
	return &order, nil
}

func (s *orderStore) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update order")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *orderStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})

	if filter.Email != "" {
		query = query.Where("shipping_email = ?", filter.Email)
	} else {
		if filter.Status != "" && filter.Status != "all" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			query = query.Where(
				"LOWER(order_number) LIKE ? OR LOWER(shipping_name) LIKE ? OR LOWER(shipping_email) LIKE ? OR LOWER(shipping_phone) LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}

	offset := (filter.Page - 1) * filter.Limit
	var orders []models.Order
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&orders).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list orders")
	}
	return orders, total, nil
}

func (s *orderStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete order")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

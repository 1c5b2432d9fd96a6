package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/bookshop/pkg/mailer"
	"github.com/example/bookshop/pkg/models"
	"github.com/example/bookshop/pkg/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds the retry loop when an insert collides with the
// unique index on order_number.
const orderNumberAttempts = 5

type OrderService struct {
	orders repository.OrderStore
	mailer mailer.Mailer
	cache  repository.OrderCache
	audit  repository.Auditor
	logger *zap.Logger
}

// NewOrderService wires the order lifecycle. cache and audit may be nil;
// both are best-effort collaborators.
func NewOrderService(orders repository.OrderStore, m mailer.Mailer, cache repository.OrderCache, audit repository.Auditor, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		mailer: m,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

type CreateOrderInput struct {
	Items              []models.OrderItem `json:"items"`
	Total              float64            `json:"total"`
	ShippingName       string             `json:"shippingName"`
	ShippingEmail      string             `json:"shippingEmail"`
	ShippingPhone      string             `json:"shippingPhone"`
	ShippingAddress    string             `json:"shippingAddress"`
	ShippingCity       string             `json:"shippingCity"`
	ShippingArea       string             `json:"shippingArea"`
	ShippingPostalCode string             `json:"shippingPostalCode"`
	PaymentMethod      string             `json:"paymentMethod"`
}

func (in *CreateOrderInput) validate() error {
	if len(in.Items) == 0 {
		return missingField("items")
	}
	if in.Total <= 0 {
		return &ValidationError{Message: "total must be a positive amount"}
	}
	required := []struct{ name, value string }{
		{"shippingName", in.ShippingName},
		{"shippingEmail", in.ShippingEmail},
		{"shippingPhone", in.ShippingPhone},
		{"shippingAddress", in.ShippingAddress},
		{"shippingCity", in.ShippingCity},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return missingField(f.name)
		}
	}
	return nil
}

// newOrderNumber builds the human-facing code: "IBC", the last six digits of
// the epoch-millisecond timestamp, and a zero-padded three-digit random
// suffix. Collisions are handled by the unique index plus retry in Create.
func newOrderNumber() string {
	return fmt.Sprintf("IBC%06d%03d", time.Now().UnixMilli()%1_000_000, rand.Intn(1000))
}

// Create validates the submission, persists the order with status pending
// and notifies the admin recipients. The notification is best-effort: a
// dispatch failure is logged, never returned.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:                 uuid.NewString(),
		Total:              in.Total,
		Status:             models.OrderStatusPending,
		PaymentStatus:      models.PaymentStatusPending,
		PaymentMethod:      in.PaymentMethod,
		ShippingName:       in.ShippingName,
		ShippingEmail:      in.ShippingEmail,
		ShippingPhone:      in.ShippingPhone,
		ShippingAddress:    in.ShippingAddress,
		ShippingCity:       in.ShippingCity,
		ShippingArea:       in.ShippingArea,
		ShippingPostalCode: in.ShippingPostalCode,
	}
	if err := order.SetLineItems(in.Items); err != nil {
		return nil, &ValidationError{Message: "items could not be encoded"}
	}

	var created bool
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = newOrderNumber()
		err := s.orders.Create(ctx, order)
		if err == nil {
			created = true
			break
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return nil, err
		}
		s.logger.Warn("order number collision, retrying",
			zap.String("order_number", order.OrderNumber))
	}
	if !created {
		return nil, ErrOrderNumberExhausted
	}

	if s.cache != nil {
		if err := s.cache.CacheOrder(ctx, order); err != nil {
			s.logger.Warn("failed to cache order", zap.Error(err))
		}
	}
	s.recordAudit(order.ID, order.ShippingEmail, "create_order",
		bson.M{"order_number": order.OrderNumber, "total": order.Total})

	if err := s.mailer.Send(ctx, mailer.KindAdminNewOrder, order); err != nil {
		s.logger.Error("admin notification failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	return order, nil
}

type UpdateStatusInput struct {
	Status         string  `json:"status"`
	AdminNotes     *string `json:"adminNotes"`
	TrackingNumber *string `json:"trackingNumber"`
	Actor          string  `json:"-"`
}

// UpdateStatus persists a status change and dispatches the notification
// keyed to the transition taken. No edge of the status graph is rejected:
// side effects depend only on the destination differing from the prior
// status. DeliveryDate is set exactly when the order first becomes
// delivered in this update.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*models.Order, error) {
	newStatus := models.OrderStatus(in.Status)
	if !newStatus.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid status %q", in.Status)}
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prior := order.Status

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	if in.AdminNotes != nil {
		updates["admin_notes"] = *in.AdminNotes
		order.AdminNotes = *in.AdminNotes
	}
	if in.TrackingNumber != nil {
		updates["tracking_number"] = *in.TrackingNumber
		order.TrackingNumber = *in.TrackingNumber
	}
	if newStatus == models.OrderStatusDelivered && prior != models.OrderStatusDelivered {
		updates["delivery_date"] = now
		order.DeliveryDate = &now
	}

	if err := s.orders.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}
	order.Status = newStatus
	order.UpdatedAt = now

	if s.cache != nil {
		if err := s.cache.InvalidateOrder(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate order cache", zap.Error(err))
		}
	}
	s.recordAudit(order.ID, in.Actor, "update_order_status",
		bson.M{"from": prior, "to": newStatus})

	if kind, ok := notificationFor(prior, newStatus); ok {
		if err := s.mailer.Send(ctx, kind, order); err != nil {
			s.logger.Error("customer notification failed",
				zap.String("order_number", order.OrderNumber),
				zap.String("kind", string(kind)), zap.Error(err))
		}
	}

	return order, nil
}

// notificationFor selects the customer email for a transition. Re-setting
// the same status, or moving to pending/cancelled, sends nothing.
func notificationFor(prior, next models.OrderStatus) (mailer.Kind, bool) {
	if prior == next {
		return "", false
	}
	switch next {
	case models.OrderStatusApproved:
		return mailer.KindApproved, true
	case models.OrderStatusOutForDelivery:
		return mailer.KindOutForDelivery, true
	case models.OrderStatusDelivered:
		return mailer.KindDelivered, true
	}
	return "", false
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	if s.cache != nil {
		if order, err := s.cache.GetOrder(ctx, id); err == nil {
			return order, nil
		}
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheOrder(ctx, order); err != nil {
			s.logger.Warn("failed to cache order", zap.Error(err))
		}
	}
	return order, nil
}

type ListOrdersInput struct {
	Status string
	Search string
	Email  string
	Page   int
	Limit  int
}

// List returns one page of orders, newest first. When Email is set the
// customer self-service mode wins and Status/Search are ignored.
func (s *OrderService) List(ctx context.Context, in ListOrdersInput) ([]models.Order, Pagination, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	orders, total, err := s.orders.List(ctx, repository.OrderFilter{
		Status: in.Status,
		Search: in.Search,
		Email:  in.Email,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	return orders, NewPagination(page, limit, total), nil
}

func (s *OrderService) Delete(ctx context.Context, id, actor string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateOrder(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate order cache", zap.Error(err))
		}
	}
	s.recordAudit(id, actor, "delete_order", nil)
	return nil
}

// recordAudit writes the audit entry in the background, matching the
// best-effort contract of the audit store.
func (s *OrderService) recordAudit(entityID, actor, action string, data bson.M) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.RecordAction(ctx, &repository.AuditEntry{
			Actor:    actor,
			Action:   action,
			Entity:   "order",
			EntityID: entityID,
			Data:     data,
		}); err != nil {
			s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}()
}

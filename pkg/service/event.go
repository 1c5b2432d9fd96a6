package service

import (
	"context"
	"strings"
	"time"

	"github.com/example/bookshop/pkg/models"
	"github.com/example/bookshop/pkg/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService struct {
	store  repository.EventStore
	audit  repository.Auditor
	logger *zap.Logger
}

func NewEventService(store repository.EventStore, audit repository.Auditor, logger *zap.Logger) *EventService {
	return &EventService{store: store, audit: audit, logger: logger}
}

type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	Image       string     `json:"image"`
	StartsAt    *time.Time `json:"startsAt"`
}

func (in *EventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return missingField("title")
	}
	return nil
}

func (in *EventInput) apply(e *models.Event) {
	e.Title = in.Title
	e.Description = in.Description
	e.Category = in.Category
	if in.Status != "" {
		e.Status = models.EventStatus(in.Status)
	}
	e.Location = in.Location
	e.Image = NormalizeImageURL(in.Image)
	e.StartsAt = in.StartsAt
}

func (s *EventService) Create(ctx context.Context, in EventInput, actor string) (*models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	e := &models.Event{ID: uuid.NewString(), Status: models.EventStatusUpcoming}
	in.apply(e)

	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	s.recordAudit(e.ID, actor, "create_event")
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.store.FindByID(ctx, id)
}

type ListEventsInput struct {
	Search   string
	Category string
	Status   string
	Page     int
	Limit    int
}

func (s *EventService) List(ctx context.Context, in ListEventsInput) ([]models.Event, PageInfo, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	list, total, err := s.store.List(ctx, repository.EventFilter{
		Search:   in.Search,
		Category: in.Category,
		Status:   in.Status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, PageInfo{}, err
	}
	return list, NewPagination(page, limit, total).WithNav(), nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput, actor string) (*models.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(e)

	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	s.recordAudit(id, actor, "update_event")
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(id, actor, "delete_event")
	return nil
}

func (s *EventService) recordAudit(entityID, actor, action string) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.RecordAction(ctx, &repository.AuditEntry{
			Actor:    actor,
			Action:   action,
			Entity:   "event",
			EntityID: entityID,
		}); err != nil {
			s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}()
}

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

type AnnouncementService struct {
	store  repository.AnnouncementStore
	audit  repository.Auditor
	logger *zap.Logger
}

func NewAnnouncementService(store repository.AnnouncementStore, audit repository.Auditor, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{store: store, audit: audit, logger: logger}
}

type AnnouncementInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Featured bool   `json:"featured"`
}

func (in *AnnouncementInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return missingField("title")
	}
	return nil
}

func (s *AnnouncementService) Create(ctx context.Context, in AnnouncementInput, actor string) (*models.Announcement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	a := &models.Announcement{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Content:  in.Content,
		Image:    NormalizeImageURL(in.Image),
		Featured: in.Featured,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	s.recordAudit(a.ID, actor, "create_announcement")
	return a, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	return s.store.FindByID(ctx, id)
}

type ListAnnouncementsInput struct {
	Search   string
	Featured *bool
	Page     int
	Limit    int
}

func (s *AnnouncementService) List(ctx context.Context, in ListAnnouncementsInput) ([]models.Announcement, PageInfo, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	list, total, err := s.store.List(ctx, repository.AnnouncementFilter{
		Search:   in.Search,
		Featured: in.Featured,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, PageInfo{}, err
	}
	return list, NewPagination(page, limit, total).WithNav(), nil
}

func (s *AnnouncementService) Update(ctx context.Context, id string, in AnnouncementInput, actor string) (*models.Announcement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title = in.Title
	a.Content = in.Content
	a.Image = NormalizeImageURL(in.Image)
	a.Featured = in.Featured

	if err := s.store.Update(ctx, a); err != nil {
		return nil, err
	}
	s.recordAudit(id, actor, "update_announcement")
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(id, actor, "delete_announcement")
	return nil
}

func (s *AnnouncementService) recordAudit(entityID, actor, action string) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.RecordAction(ctx, &repository.AuditEntry{
			Actor:    actor,
			Action:   action,
			Entity:   "announcement",
			EntityID: entityID,
		}); err != nil {
			s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}()
}

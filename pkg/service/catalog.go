package service

import (
	"context"
	"strings"
	"time"

	"github.com/example/bookshop/pkg/models"
	"github.com/example/bookshop/pkg/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CatalogService manages the product catalog.
type CatalogService struct {
	products repository.ProductStore
	cache    repository.ProductCache
	audit    repository.Auditor
	logger   *zap.Logger
}

func NewCatalogService(products repository.ProductStore, cache repository.ProductCache, audit repository.Auditor, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    cache,
		audit:    audit,
		logger:   logger,
	}
}

type ProductInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Subject       string  `json:"subject"`
	Series        string  `json:"series"`
	Grade         string  `json:"grade"`
	Image         string  `json:"image"`
	NewCollection bool    `json:"newCollection"`
	Featured      bool    `json:"featured"`
	InStock       *bool   `json:"inStock"`
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return missingField("title")
	}
	if in.Price < 0 {
		return &ValidationError{Message: "price cannot be negative"}
	}
	return nil
}

func (in *ProductInput) apply(p *models.Product) {
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Subject = in.Subject
	p.Series = in.Series
	p.Grade = in.Grade
	p.Image = NormalizeImageURL(in.Image)
	p.NewCollection = in.NewCollection
	p.Featured = in.Featured
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput, actor string) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{ID: uuid.NewString(), InStock: true}
	in.apply(product)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.recordAudit(product.ID, actor, "create_product", bson.M{"title": product.Title})
	return product, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProduct(ctx, id); err == nil {
			return product, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheProduct(ctx, product); err != nil {
			s.logger.Warn("failed to cache product", zap.Error(err))
		}
	}
	return product, nil
}

type ListProductsInput struct {
	Category      string
	Subject       string
	Series        string
	Search        string
	NewCollection *bool
	Featured      *bool
	Page          int
	Limit         int
}

func (s *CatalogService) List(ctx context.Context, in ListProductsInput) ([]models.Product, PageInfo, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	products, total, err := s.products.List(ctx, repository.ProductFilter{
		Category:      in.Category,
		Subject:       in.Subject,
		Series:        in.Series,
		Search:        in.Search,
		NewCollection: in.NewCollection,
		Featured:      in.Featured,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, PageInfo{}, err
	}
	return products, NewPagination(page, limit, total).WithNav(), nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput, actor string) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(product)

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate product cache", zap.Error(err))
		}
	}
	s.recordAudit(id, actor, "update_product", bson.M{"title": product.Title})
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id, actor string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate product cache", zap.Error(err))
		}
	}
	s.recordAudit(id, actor, "delete_product", nil)
	return nil
}

func (s *CatalogService) recordAudit(entityID, actor, action string, data bson.M) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.RecordAction(ctx, &repository.AuditEntry{
			Actor:    actor,
			Action:   action,
			Entity:   "product",
			EntityID: entityID,
			Data:     data,
		}); err != nil {
			s.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}()
}

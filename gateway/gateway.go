package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/example/bookshop/pkg/config"
	"github.com/example/bookshop/pkg/repository"
	"github.com/example/bookshop/pkg/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Gateway struct {
	config        *config.Config
	logger        *zap.Logger
	router        *gin.Engine
	orders        *service.OrderService
	catalog       *service.CatalogService
	announcements *service.AnnouncementService
	events        *service.EventService
}

func NewGateway(
	cfg *config.Config,
	logger *zap.Logger,
	orders *service.OrderService,
	catalog *service.CatalogService,
	announcements *service.AnnouncementService,
	events *service.EventService,
) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config:        cfg,
		logger:        logger,
		router:        router,
		orders:        orders,
		catalog:       catalog,
		announcements: announcements,
		events:        events,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := g.adminOnly()

	// API v1 routes
	v1 := g.router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", g.createOrder)
			orders.GET("", g.listOrders)
			orders.GET("/:id", g.getOrder)
			orders.PUT("/:id", admin, g.updateOrderStatus)
			orders.DELETE("/:id", admin, g.deleteOrder)
		}

		products := v1.Group("/products")
		{
			products.GET("", g.listProducts)
			products.GET("/:id", g.getProduct)
			products.POST("", admin, g.createProduct)
			products.PUT("/:id", admin, g.updateProduct)
			products.DELETE("/:id", admin, g.deleteProduct)
		}

		announcements := v1.Group("/announcements")
		{
			announcements.GET("", g.listAnnouncements)
			announcements.GET("/:id", g.getAnnouncement)
			announcements.POST("", admin, g.createAnnouncement)
			announcements.PUT("/:id", admin, g.updateAnnouncement)
			announcements.DELETE("/:id", admin, g.deleteAnnouncement)
		}

		events := v1.Group("/events")
		{
			events.GET("", g.listEvents)
			events.GET("/:id", g.getEvent)
			events.POST("", admin, g.createEvent)
			events.PUT("/:id", admin, g.updateEvent)
			events.DELETE("/:id", admin, g.deleteEvent)
		}
	}
}

func (g *Gateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.config.Server.Host, g.config.Server.Port)
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Router exposes the engine for tests.
func (g *Gateway) Router() http.Handler {
	return g.router
}

// fail maps service errors onto the JSON error envelope. Internal detail is
// logged server-side only.
func (g *Gateway) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		g.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// adminOnly gates mutating admin routes on the configured email allow-list.
// The identity provider itself is external; the gateway trusts the
// authenticated email it forwards.
func (g *Gateway) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("X-Admin-Email")
		if !g.config.Admin.IsAdmin(email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set("adminEmail", email)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func boolQuery(c *gin.Context, name string) *bool {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

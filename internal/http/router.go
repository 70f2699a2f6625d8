package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/foodexplorer-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodexplorer-backend/internal/http/middleware"
	"github.com/yungbote/foodexplorer-backend/internal/observability"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	UserHandler     *httpH.UserHandler
	SessionHandler  *httpH.SessionHandler
	CatalogHandlers []*httpH.CatalogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recovery(cfg.Log))
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Public
	if cfg.UserHandler != nil {
		r.POST("/users", cfg.UserHandler.Register)
	}
	if cfg.SessionHandler != nil {
		r.POST("/sessions", cfg.SessionHandler.Create)
	}

	protected := r.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/users", cfg.UserHandler.List)
		}

		// Catalog, one route set per category
		for _, h := range cfg.CatalogHandlers {
			if h == nil {
				continue
			}
			base := "/" + h.Category().Plural
			protected.POST(base, h.Create)
			protected.GET(base, h.List)
			protected.GET(base+"/:id", h.Show)
			protected.PUT(base+"/:id", h.Update)
			protected.DELETE(base+"/:id", h.Delete)
		}
	}

	return r
}

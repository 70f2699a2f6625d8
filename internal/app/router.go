package app

import (
	apphttp "github.com/yungbote/foodexplorer-backend/internal/http"
	"github.com/yungbote/foodexplorer-backend/internal/observability"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	serviceName := ""
	if cfg.OtelEnabled {
		serviceName = cfg.OtelServiceName
	}
	return apphttp.NewServer(cfg.Addr(), apphttp.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.CORSAllowedOrigins,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		UserHandler:     handlers.User,
		SessionHandler:  handlers.Session,
		CatalogHandlers: handlers.Catalog,
	})
}

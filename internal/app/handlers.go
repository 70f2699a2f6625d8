package app

import (
	httpH "github.com/yungbote/foodexplorer-backend/internal/http/handlers"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	User    *httpH.UserHandler
	Session *httpH.SessionHandler
	Catalog []*httpH.CatalogHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	catalog := make([]*httpH.CatalogHandler, 0, len(services.Catalog))
	for _, svc := range services.Catalog {
		catalog = append(catalog, httpH.NewCatalogHandler(svc))
	}
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		User:    httpH.NewUserHandler(services.Auth, services.User),
		Session: httpH.NewSessionHandler(services.Auth),
		Catalog: catalog,
	}
}

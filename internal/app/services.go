package app

import (
	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
	"github.com/yungbote/foodexplorer-backend/internal/services"
)

type Services struct {
	Tokens  services.TokenService
	Auth    services.AuthService
	User    services.UserService
	Catalog []services.CatalogService
}

func wireServices(client *db.Client, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	auth := services.NewAuthService(log, reposet.User, tokens, cfg.BcryptCost)
	tx := db.NewTxRunner(client)

	catalogServices := make([]services.CatalogService, 0, len(reposet.Items))
	for _, repo := range reposet.Items {
		catalogServices = append(catalogServices, services.NewCatalogService(log, repo, tx))
	}
	return Services{
		Tokens:  tokens,
		Auth:    auth,
		User:    services.NewUserService(log, reposet.User, auth, cfg.BcryptCost),
		Catalog: catalogServices,
	}
}

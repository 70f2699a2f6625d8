package app

import (
	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos"
	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type Repos struct {
	User  repos.UserRepo
	Items []repos.ItemRepo
}

func wireRepos(client *db.Client, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	items := make([]repos.ItemRepo, 0, len(catalog.Categories()))
	for _, cat := range catalog.Categories() {
		items = append(items, repos.NewItemRepo(client, cat, log))
	}
	return Repos{
		User:  repos.NewUserRepo(client.DB(), log),
		Items: items,
	}
}

package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos/user"
	types "github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type ItemRepo = catalog.ItemRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewItemRepo(client *db.Client, cat types.Category, baseLog *logger.Logger) ItemRepo {
	return catalog.NewItemRepo(client, cat, baseLog)
}

// NewItemRepos builds one repo per registered category, keyed by category name.
func NewItemRepos(client *db.Client, baseLog *logger.Logger) map[string]ItemRepo {
	out := make(map[string]ItemRepo, len(types.Categories()))
	for _, cat := range types.Categories() {
		out[cat.Name] = NewItemRepo(client, cat, baseLog)
	}
	return out
}

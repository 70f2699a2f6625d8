package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos/testutil"
	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/domain/user"
)

type fixture struct {
	client *db.Client
	users  repos.UserRepo
	tokens TokenService
	auth   AuthService
	admin  user.Identity
	guest  user.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := testutil.Client(t)
	log := testutil.Logger(t)
	users := repos.NewUserRepo(client.DB(), log)
	tokens := NewTokenService("test-secret", time.Hour)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, client, "admin@example.com", user.RoleAdmin)
	guest := testutil.SeedUser(t, ctx, client, "guest@example.com", user.RoleCustomer)
	return &fixture{
		client: client,
		users:  users,
		tokens: tokens,
		auth:   NewAuthService(log, users, tokens, 4),
		admin:  admin.Identity(),
		guest:  guest.Identity(),
	}
}

func (f *fixture) catalogService(t *testing.T, cat catalog.Category) CatalogService {
	t.Helper()
	return f.catalogServiceWith(t, repos.NewItemRepo(f.client, cat, testutil.Logger(t)))
}

func (f *fixture) catalogServiceWith(t *testing.T, repo repos.ItemRepo) CatalogService {
	t.Helper()
	return NewCatalogService(testutil.Logger(t), repo, db.NewTxRunner(f.client))
}

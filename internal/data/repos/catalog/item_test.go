package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/domain/user"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
)

func newItem(name string, owner uint) *types.Item {
	return &types.Item{
		Name:        name,
		Category:    "doce",
		Description: "x",
		Price:       decimal.RequireFromString("10.50"),
		OwnerID:     owner,
	}
}

func TestItemRepoCRUDPerCategory(t *testing.T) {
	for _, cat := range types.Categories() {
		cat := cat
		t.Run(cat.Name, func(t *testing.T) {
			client := testutil.Client(t)
			ctx := context.Background()
			dbc := dbctx.Context{Ctx: ctx}
			owner := testutil.SeedUser(t, ctx, client, "owner@example.com", user.RoleAdmin)
			repo := NewItemRepo(client, cat, testutil.Logger(t))

			id, err := repo.Create(dbc, newItem("Bolo", owner.ID))
			require.NoError(t, err)
			require.NotZero(t, id)
			require.NoError(t, repo.InsertNames(dbc, types.ChildTags, id, []string{"festa"}))
			require.NoError(t, repo.InsertNames(dbc, types.ChildIngredients, id, []string{"farinha", "ovo"}))

			got, err := repo.GetByID(dbc, id)
			require.NoError(t, err)
			assert.Equal(t, "Bolo", got.Name)
			assert.Equal(t, owner.ID, got.OwnerID)
			assert.True(t, decimal.RequireFromString("10.5").Equal(got.Price), "price %s", got.Price)

			tags, err := repo.ListNames(dbc, types.ChildTags, id)
			require.NoError(t, err)
			assert.Equal(t, []string{"festa"}, tags)
			ingredients, err := repo.ListNames(dbc, types.ChildIngredients, id)
			require.NoError(t, err)
			assert.Equal(t, []string{"farinha", "ovo"}, ingredients)

			image := "bolo.png"
			upd := newItem("Bolo de cenoura", owner.ID)
			upd.ID = id
			upd.Image = &image
			n, err := repo.Update(dbc, upd)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			got, err = repo.GetByID(dbc, id)
			require.NoError(t, err)
			assert.Equal(t, "Bolo de cenoura", got.Name)
			require.NotNil(t, got.Image)
			assert.Equal(t, "bolo.png", *got.Image)

			upd.ID = id + 1000
			n, err = repo.Update(dbc, upd)
			require.NoError(t, err)
			assert.Zero(t, n)

			n, err = repo.Delete(dbc, id)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
			assert.Zero(t, testutil.CountRows(t, client, cat.TagTable, cat.ParentColumn, id))
			assert.Zero(t, testutil.CountRows(t, client, cat.IngredientTable, cat.ParentColumn, id))

			_, err = repo.GetByID(dbc, id)
			assert.True(t, db.IsNotFound(err))

			n, err = repo.Delete(dbc, id)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestItemRepoListAndAggregatesAreOwnerScoped(t *testing.T) {
	client := testutil.Client(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	alice := testutil.SeedUser(t, ctx, client, "alice@example.com", user.RoleAdmin)
	bob := testutil.SeedUser(t, ctx, client, "bob@example.com", user.RoleAdmin)
	repo := NewItemRepo(client, types.Drink, testutil.Logger(t))

	suco, err := repo.Create(dbc, newItem("Suco", alice.ID))
	require.NoError(t, err)
	agua, err := repo.Create(dbc, newItem("Agua", alice.ID))
	require.NoError(t, err)
	cafe, err := repo.Create(dbc, newItem("Cafe", bob.ID))
	require.NoError(t, err)

	require.NoError(t, repo.InsertNames(dbc, types.ChildTags, suco, []string{"gelado", "natural"}))
	require.NoError(t, repo.InsertNames(dbc, types.ChildIngredients, suco, []string{"laranja"}))
	require.NoError(t, repo.InsertNames(dbc, types.ChildTags, cafe, []string{"quente"}))

	items, err := repo.ListByOwner(dbc, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Agua", items[0].Name)
	assert.Equal(t, "Suco", items[1].Name)
	assert.Equal(t, agua, items[0].ID)

	tags, err := repo.AggregateNames(dbc, types.ChildTags, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{suco: "gelado,natural"}, tags)

	ingredients, err := repo.AggregateNames(dbc, types.ChildIngredients, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{suco: "laranja"}, ingredients)

	none, err := repo.ListByOwner(dbc, alice.ID+bob.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestItemRepoDeleteNames(t *testing.T) {
	client := testutil.Client(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	owner := testutil.SeedUser(t, ctx, client, "o@example.com", user.RoleAdmin)
	repo := NewItemRepo(client, types.Dessert, testutil.Logger(t))

	id, err := repo.Create(dbc, newItem("Pudim", owner.ID))
	require.NoError(t, err)
	require.NoError(t, repo.InsertNames(dbc, types.ChildTags, id, []string{"a", "b", "c"}))
	require.NoError(t, repo.InsertNames(dbc, types.ChildTags, id, nil))

	n, err := repo.DeleteNames(dbc, types.ChildTags, id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	tags, err := repo.ListNames(dbc, types.ChildTags, id)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/foodexplorer-backend/internal/data/repos"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos/testutil"
	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
)

// failingRepo fails ingredient inserts once armed.
type failingRepo struct {
	repos.ItemRepo
	armed bool
}

func (r *failingRepo) InsertNames(dbc dbctx.Context, kind catalog.ChildKind, itemID uint, names []string) error {
	if r.armed && kind == catalog.ChildIngredients {
		return errors.New("disk full")
	}
	return r.ItemRepo.InsertNames(dbc, kind, itemID, names)
}

func bolo() catalog.Payload {
	price := decimal.NewFromInt(10)
	return catalog.Payload{
		Name:        "Bolo",
		Category:    "doce",
		Description: "x",
		Price:       &price,
		Tags:        []string{"festa"},
		Ingredients: []string{"farinha", "ovo"},
	}
}

func TestCreateThenShowReturnsChildren(t *testing.T) {
	for _, cat := range catalog.Categories() {
		t.Run(cat.Name, func(t *testing.T) {
			f := newFixture(t)
			svc := f.catalogService(t, cat)
			ctx := context.Background()

			id, err := svc.Create(ctx, f.admin, bolo())
			require.NoError(t, err)

			got, err := svc.Show(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "Bolo", got.Name)
			assert.Equal(t, f.admin.ID, got.OwnerID)
			assert.Equal(t, []string{"festa"}, got.Tags)
			assert.Equal(t, []string{"farinha", "ovo"}, got.Ingredients)
			assert.True(t, decimal.NewFromInt(10).Equal(got.Price))
		})
	}
}

func TestCreateWritesExactlyTheSubmittedChildren(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Food)
	ctx := context.Background()

	first, err := svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)
	p := bolo()
	p.Name = "Torta"
	p.Tags = []string{"a", "b", "c"}
	p.Ingredients = []string{"d"}
	second, err := svc.Create(ctx, f.admin, p)
	require.NoError(t, err)

	assert.Equal(t, int64(1), testutil.CountRows(t, f.client, "food_tags", "food_id", first))
	assert.Equal(t, int64(2), testutil.CountRows(t, f.client, "food_ingredients", "food_id", first))
	assert.Equal(t, int64(3), testutil.CountRows(t, f.client, "food_tags", "food_id", second))
	assert.Equal(t, int64(1), testutil.CountRows(t, f.client, "food_ingredients", "food_id", second))
}

func TestCreateRollsBackOnChildFailure(t *testing.T) {
	f := newFixture(t)
	repo := &failingRepo{ItemRepo: repos.NewItemRepo(f.client, catalog.Drink, testutil.Logger(t)), armed: true}
	svc := f.catalogServiceWith(t, repo)

	_, err := svc.Create(context.Background(), f.admin, bolo())
	require.Error(t, err)
	apiErr, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.CodeOperationFailed, apiErr.Code)
	assert.Equal(t, "could not create drink: disk full", apiErr.Message)

	assert.Zero(t, testutil.CountRows(t, f.client, "drinks", "user_id", f.admin.ID))
	var tags int64
	require.NoError(t, f.client.DB().Table("drink_tags").Count(&tags).Error)
	assert.Zero(t, tags)
}

func TestUpdateReplacesChildren(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Dessert)
	ctx := context.Background()

	id, err := svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)

	p := bolo()
	p.Name = "Bolo de fuba"
	p.Tags = []string{"lanche", "festa"}
	p.Ingredients = []string{"fuba"}
	require.NoError(t, svc.Update(ctx, f.admin, id, p))

	got, err := svc.Show(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolo de fuba", got.Name)
	tags := append([]string(nil), got.Tags...)
	sort.Strings(tags)
	assert.Equal(t, []string{"festa", "lanche"}, tags)
	assert.Equal(t, []string{"fuba"}, got.Ingredients)
}

func TestUpdateMissingItemIsNotFoundAndTouchesNothing(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Food)
	ctx := context.Background()

	id, err := svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)

	err = svc.Update(ctx, f.admin, id+99, bolo())
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound), "got %v", err)
	assert.Equal(t, 404, apierr.StatusOf(err))
	assert.EqualError(t, err, "food not found")

	assert.Equal(t, int64(1), testutil.CountRows(t, f.client, "food_tags", "food_id", id))
	assert.Equal(t, int64(2), testutil.CountRows(t, f.client, "food_ingredients", "food_id", id))
}

func TestUpdateRollsBackOnChildFailure(t *testing.T) {
	f := newFixture(t)
	repo := &failingRepo{ItemRepo: repos.NewItemRepo(f.client, catalog.Food, testutil.Logger(t))}
	svc := f.catalogServiceWith(t, repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)

	repo.armed = true
	p := bolo()
	p.Name = "Changed"
	p.Tags = []string{"new"}
	err = svc.Update(ctx, f.admin, id, p)
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeOperationFailed))

	repo.armed = false
	got, err := svc.Show(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolo", got.Name)
	assert.Equal(t, []string{"festa"}, got.Tags)
	assert.Equal(t, []string{"farinha", "ovo"}, got.Ingredients)
}

func TestDeleteCascadesAndMissingIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Food)
	ctx := context.Background()

	id, err := svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, f.admin, id))
	assert.Zero(t, testutil.CountRows(t, f.client, "food_tags", "food_id", id))
	assert.Zero(t, testutil.CountRows(t, f.client, "food_ingredients", "food_id", id))

	_, err = svc.Show(ctx, id)
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound))

	err = svc.Delete(ctx, f.admin, id)
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound))
}

func TestWritesRequireAdminBeforeValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Food)
	ctx := context.Background()

	id, err := svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)

	for _, p := range []catalog.Payload{bolo(), {}} {
		_, err := svc.Create(ctx, f.guest, p)
		assert.True(t, apierr.IsCode(err, apierr.CodeForbidden), "create: %v", err)
		assert.Equal(t, 401, apierr.StatusOf(err))

		err = svc.Update(ctx, f.guest, id, p)
		assert.True(t, apierr.IsCode(err, apierr.CodeForbidden), "update: %v", err)
	}
	err = svc.Delete(ctx, f.guest, id)
	assert.True(t, apierr.IsCode(err, apierr.CodeForbidden))

	got, err := svc.Show(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bolo", got.Name)
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Food)

	p := bolo()
	p.Ingredients = nil
	_, err := svc.Create(context.Background(), f.admin, p)
	assert.EqualError(t, err, "food must have at least one ingredient")
	assert.Zero(t, testutil.CountRows(t, f.client, "foods", "user_id", f.admin.ID))
}

func TestListIsOwnerScopedOrderedAndAggregated(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(t, catalog.Food)
	ctx := context.Background()

	empty, err := svc.List(ctx, f.admin.ID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	p := bolo()
	p.Name = "Pudim"
	p.Tags = []string{"doce", "gelado"}
	p.Ingredients = []string{"leite"}
	_, err = svc.Create(ctx, f.admin, p)
	require.NoError(t, err)
	_, err = svc.Create(ctx, f.admin, bolo())
	require.NoError(t, err)

	other := f.admin
	other.ID = f.guest.ID
	_, err = svc.Create(ctx, other, bolo())
	require.NoError(t, err)

	items, err := svc.List(ctx, f.admin.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bolo", items[0].Name)
	assert.Equal(t, "festa", items[0].Tags)
	assert.Equal(t, "farinha,ovo", items[0].Ingredients)
	assert.Equal(t, "Pudim", items[1].Name)
	assert.Equal(t, "doce,gelado", items[1].Tags)
	assert.Equal(t, "leite", items[1].Ingredients)

	theirs, err := svc.List(ctx, f.guest.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, f.guest.ID, theirs[0].OwnerID)
}

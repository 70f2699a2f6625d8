package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos"
	types "github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/domain/user"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

// CatalogService implements the item operations for one category.
type CatalogService interface {
	Category() types.Category
	// List returns the owner's items ordered by name. An owner without items
	// gets an empty slice.
	List(ctx context.Context, ownerID uint) ([]*types.ItemWithAggregates, error)
	Show(ctx context.Context, id uint) (*types.ItemWithChildren, error)
	Create(ctx context.Context, actor user.Identity, p types.Payload) (uint, error)
	Update(ctx context.Context, actor user.Identity, id uint, p types.Payload) error
	Delete(ctx context.Context, actor user.Identity, id uint) error
}

type catalogService struct {
	log  *logger.Logger
	repo repos.ItemRepo
	tx   db.TxRunner
	cat  types.Category
}

func NewCatalogService(log *logger.Logger, repo repos.ItemRepo, tx db.TxRunner) CatalogService {
	cat := repo.Category()
	serviceLog := log.With("service", "CatalogService", "category", cat.Name)
	return &catalogService{log: serviceLog, repo: repo, tx: tx, cat: cat}
}

// RequireAdmin is the role gate for every catalog write. It runs before any
// payload validation.
func RequireAdmin(actor user.Identity, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	return apierr.Forbidden(fmt.Sprintf("user is not authorized to %s products", action))
}

func (s *catalogService) Category() types.Category { return s.cat }

func (s *catalogService) notFound() error {
	return apierr.NotFound(fmt.Sprintf("%s not found", s.cat.Name))
}

// failed keeps typed errors as they are and wraps anything else.
func (s *catalogService) failed(action string, err error) error {
	if _, ok := apierr.As(err); ok {
		return err
	}
	s.log.Error("Catalog operation failed", "action", action, "error", err)
	return apierr.OperationFailed(fmt.Sprintf("could not %s %s", action, s.cat.Name), err)
}

func (s *catalogService) List(ctx context.Context, ownerID uint) ([]*types.ItemWithAggregates, error) {
	var (
		items       []*types.Item
		tags        map[uint]string
		ingredients map[uint]string
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() error {
		var err error
		items, err = s.repo.ListByOwner(dbc, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.repo.AggregateNames(dbc, types.ChildTags, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		ingredients, err = s.repo.AggregateNames(dbc, types.ChildIngredients, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.failed("list", err)
	}

	out := make([]*types.ItemWithAggregates, 0, len(items))
	for _, item := range items {
		out = append(out, &types.ItemWithAggregates{
			Item:        *item,
			Tags:        tags[item.ID],
			Ingredients: ingredients[item.ID],
		})
	}
	return out, nil
}

func (s *catalogService) Show(ctx context.Context, id uint) (*types.ItemWithChildren, error) {
	dbc := dbctx.Context{Ctx: ctx}
	item, err := s.repo.GetByID(dbc, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, s.failed("show", err)
	}
	out := &types.ItemWithChildren{Item: *item}
	if out.Tags, err = s.repo.ListNames(dbc, types.ChildTags, id); err != nil {
		return nil, s.failed("show", err)
	}
	if out.Ingredients, err = s.repo.ListNames(dbc, types.ChildIngredients, id); err != nil {
		return nil, s.failed("show", err)
	}
	return out, nil
}

func (s *catalogService) itemFrom(ownerID uint, p types.Payload) *types.Item {
	item := &types.Item{
		Name:        strings.TrimSpace(p.Name),
		Category:    strings.TrimSpace(p.Category),
		Description: strings.TrimSpace(p.Description),
		OwnerID:     ownerID,
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Image != nil {
		img := strings.TrimSpace(*p.Image)
		item.Image = &img
	}
	return item
}

func (s *catalogService) insertChildren(dbc dbctx.Context, id uint, p types.Payload) error {
	for _, kind := range types.ChildKinds() {
		if err := s.repo.InsertNames(dbc, kind, id, p.Names(kind)); err != nil {
			return err
		}
	}
	return nil
}

func (s *catalogService) Create(ctx context.Context, actor user.Identity, p types.Payload) (uint, error) {
	if err := RequireAdmin(actor, "create"); err != nil {
		return 0, err
	}
	if err := ValidatePayload(s.cat, p); err != nil {
		return 0, err
	}
	item := s.itemFrom(actor.ID, p)

	var id uint
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		var err error
		if id, err = s.repo.Create(dbc, item); err != nil {
			return err
		}
		return s.insertChildren(dbc, id, p)
	})
	if err != nil {
		return 0, s.failed("create", err)
	}
	s.log.Info("Item created", "id", id, "user_id", actor.ID)
	return id, nil
}

func (s *catalogService) Update(ctx context.Context, actor user.Identity, id uint, p types.Payload) error {
	if err := RequireAdmin(actor, "update"); err != nil {
		return err
	}
	if err := ValidatePayload(s.cat, p); err != nil {
		return err
	}
	item := s.itemFrom(actor.ID, p)
	item.ID = id

	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		n, err := s.repo.Update(dbc, item)
		if err != nil {
			return err
		}
		if n == 0 {
			return s.notFound()
		}
		for _, kind := range types.ChildKinds() {
			if _, err := s.repo.DeleteNames(dbc, kind, id); err != nil {
				return err
			}
		}
		return s.insertChildren(dbc, id, p)
	})
	if err != nil {
		return s.failed("update", err)
	}
	s.log.Info("Item updated", "id", id, "user_id", actor.ID)
	return nil
}

func (s *catalogService) Delete(ctx context.Context, actor user.Identity, id uint) error {
	if err := RequireAdmin(actor, "delete"); err != nil {
		return err
	}
	n, err := s.repo.Delete(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return s.failed("delete", err)
	}
	if n == 0 {
		return s.notFound()
	}
	s.log.Info("Item deleted", "id", id, "user_id", actor.ID)
	return nil
}

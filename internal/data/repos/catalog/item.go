package catalog

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	types "github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

// ItemRepo is the storage access for one category. Every category uses the
// same implementation; the descriptor supplies table and column names.
type ItemRepo interface {
	Category() types.Category

	ListByOwner(dbc dbctx.Context, ownerID uint) ([]*types.Item, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Item, error)
	Create(dbc dbctx.Context, item *types.Item) (uint, error)
	Update(dbc dbctx.Context, item *types.Item) (int64, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)

	// AggregateNames returns, per item owned by ownerID, the child names of
	// kind joined with ",". Items without children are absent from the map.
	AggregateNames(dbc dbctx.Context, kind types.ChildKind, ownerID uint) (map[uint]string, error)
	ListNames(dbc dbctx.Context, kind types.ChildKind, itemID uint) ([]string, error)
	InsertNames(dbc dbctx.Context, kind types.ChildKind, itemID uint, names []string) error
	DeleteNames(dbc dbctx.Context, kind types.ChildKind, itemID uint) (int64, error)
}

type itemRepo struct {
	db      *gorm.DB
	dialect db.Dialect
	cat     types.Category
	log     *logger.Logger
}

func NewItemRepo(client *db.Client, cat types.Category, baseLog *logger.Logger) ItemRepo {
	repoLog := baseLog.With("repo", "ItemRepo", "category", cat.Name)
	return &itemRepo{db: client.DB(), dialect: client.Dialect(), cat: cat, log: repoLog}
}

func (r *itemRepo) Category() types.Category { return r.cat }

func (r *itemRepo) itemColumns() string {
	return fmt.Sprintf(
		"id, img, name, category, description, price, %s AS owner_id, created_at, updated_at",
		r.cat.OwnerColumn,
	)
}

func (r *itemRepo) ListByOwner(dbc dbctx.Context, ownerID uint) ([]*types.Item, error) {
	results := []*types.Item{}
	if err := dbc.DB(r.db).
		Table(r.cat.ItemTable).
		Select(r.itemColumns()).
		Where(fmt.Sprintf("%s = ?", r.cat.OwnerColumn), ownerID).
		Order("name ASC").
		Order("id ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns gorm.ErrRecordNotFound when no row matches.
func (r *itemRepo) GetByID(dbc dbctx.Context, id uint) (*types.Item, error) {
	var item types.Item
	if err := dbc.DB(r.db).
		Table(r.cat.ItemTable).
		Select(r.itemColumns()).
		Where("id = ?", id).
		Take(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts the item row and returns the generated id.
func (r *itemRepo) Create(dbc dbctx.Context, item *types.Item) (uint, error) {
	now := time.Now().UTC()
	query := fmt.Sprintf(
		"INSERT INTO %s (name, category, description, price, img, %s, created_at, updated_at) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id",
		r.cat.ItemTable, r.cat.OwnerColumn,
	)
	var id uint
	if err := dbc.DB(r.db).
		Raw(query, item.Name, item.Category, item.Description, item.Price, item.Image, item.OwnerID, now, now).
		Scan(&id).Error; err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("insert into %s returned no id", r.cat.ItemTable)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return id, nil
}

// Update rewrites the item's fields and returns the number of matched rows.
// The image is only touched when one is supplied.
func (r *itemRepo) Update(dbc dbctx.Context, item *types.Item) (int64, error) {
	fields := map[string]any{
		"name":            item.Name,
		"category":        item.Category,
		"description":     item.Description,
		"price":           item.Price,
		r.cat.OwnerColumn: item.OwnerID,
		"updated_at":      time.Now().UTC(),
	}
	if item.Image != nil {
		fields["img"] = *item.Image
	}
	res := dbc.DB(r.db).
		Table(r.cat.ItemTable).
		Where("id = ?", item.ID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// Delete removes the item row; children go with it through ON DELETE CASCADE.
func (r *itemRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	res := dbc.DB(r.db).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.cat.ItemTable), id)
	return res.RowsAffected, res.Error
}

type aggregateRow struct {
	ItemID uint   `gorm:"column:item_id"`
	Names  string `gorm:"column:names"`
}

func (r *itemRepo) AggregateNames(dbc dbctx.Context, kind types.ChildKind, ownerID uint) (map[uint]string, error) {
	owned := dbc.DB(r.db).
		Table(r.cat.ItemTable).
		Select("id").
		Where(fmt.Sprintf("%s = ?", r.cat.OwnerColumn), ownerID)

	var rows []aggregateRow
	if err := dbc.DB(r.db).
		Table(r.cat.ChildTable(kind)).
		Select(fmt.Sprintf("%s AS item_id, %s AS names", r.cat.ParentColumn, r.dialect.StringAgg("name", "id"))).
		Where(fmt.Sprintf("%s IN (?)", r.cat.ParentColumn), owned).
		Group(r.cat.ParentColumn).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]string, len(rows))
	for _, row := range rows {
		out[row.ItemID] = row.Names
	}
	return out, nil
}

func (r *itemRepo) ListNames(dbc dbctx.Context, kind types.ChildKind, itemID uint) ([]string, error) {
	names := []string{}
	if err := dbc.DB(r.db).
		Table(r.cat.ChildTable(kind)).
		Where(fmt.Sprintf("%s = ?", r.cat.ParentColumn), itemID).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// InsertNames writes all names in a single multi-row INSERT.
func (r *itemRepo) InsertNames(dbc dbctx.Context, kind types.ChildKind, itemID uint, names []string) error {
	if len(names) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(names))
	args := make([]any, 0, len(names)*2)
	for _, name := range names {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, strings.TrimSpace(name), itemID)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (name, %s) VALUES %s",
		r.cat.ChildTable(kind), r.cat.ParentColumn, strings.Join(placeholders, ", "),
	)
	return dbc.DB(r.db).Exec(query, args...).Error
}

func (r *itemRepo) DeleteNames(dbc dbctx.Context, kind types.ChildKind, itemID uint) (int64, error) {
	res := dbc.DB(r.db).Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.cat.ChildTable(kind), r.cat.ParentColumn),
		itemID,
	)
	return res.RowsAffected, res.Error
}

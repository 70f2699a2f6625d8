package db

import (
	"fmt"

	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/domain/user"
)

// Migrate creates the users table and one item/tag/ingredient table set per
// category. Catalog tables are rendered from the category descriptor so the
// foreign key names stay in one place.
func Migrate(c *Client, categories []catalog.Category) error {
	db := c.DB()
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	for _, cat := range categories {
		for _, stmt := range categoryDDL(c.Dialect(), cat) {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("migrate %s: %w", cat.ItemTable, err)
			}
		}
	}
	return nil
}

func categoryDDL(d Dialect, cat catalog.Category) []string {
	stmts := []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
	id %[2]s,
	img VARCHAR(%[3]d),
	name VARCHAR(%[3]d) NOT NULL,
	category VARCHAR(%[3]d) NOT NULL,
	description TEXT,
	price DECIMAL(10,%[4]d) NOT NULL,
	%[5]s BIGINT REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`, cat.ItemTable, d.PrimaryKey(), catalog.MaxNameLength, catalog.PriceScale, cat.OwnerColumn),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)`,
			cat.ItemTable, cat.OwnerColumn, cat.ItemTable, cat.OwnerColumn),
	}
	for _, kind := range catalog.ChildKinds() {
		table := cat.ChildTable(kind)
		stmts = append(stmts,
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s,
	name VARCHAR(%d) NOT NULL,
	%s BIGINT NOT NULL REFERENCES %s(id) ON DELETE CASCADE
)`, table, d.PrimaryKey(), catalog.MaxNameLength, cat.ParentColumn, cat.ItemTable),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)`,
				table, cat.ParentColumn, table, cat.ParentColumn),
		)
	}
	return stmts
}


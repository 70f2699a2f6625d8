package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}

// Client opens a private in-memory SQLite database with every table migrated.
// The database disappears when the test ends.
func Client(tb testing.TB) *db.Client {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())

	client, err := db.Open(db.Config{Driver: db.DriverSQLite, DSN: dsn, Silent: true}, Logger(tb))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() { _ = client.Close() })

	if err := db.Migrate(client, catalog.Categories()); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return client
}

package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	DSN    string
	// Silent disables GORM's own statement logger.
	Silent bool
}

// Client owns the connection pool and the dialect for the configured engine.
// It is opened once at startup and closed on shutdown.
type Client struct {
	db      *gorm.DB
	dialect Dialect
	log     *logger.Logger
}

func Open(cfg Config, baseLog *logger.Logger) (*Client, error) {
	clientLog := baseLog.With("service", "StorageClient", "driver", cfg.Driver)

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(cfg.Silent),
	}

	var (
		dialector gorm.Dialector
		dialect   Dialect
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverSQLite, "sqlite3", "":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
		dialect = sqliteDialect{}
	case DriverPostgres, "postgresql":
		dialector = postgres.Open(cfg.DSN)
		dialect = postgresDialect{}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialect.Name(), err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if dialect.Name() == DriverSQLite {
		// One writer at a time; also keeps shared in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	clientLog.Info("Storage client opened")
	return &Client{db: gdb, dialect: dialect, log: clientLog}, nil
}

func (c *Client) DB() *gorm.DB { return c.db }

func (c *Client) Dialect() Dialect { return c.dialect }

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	c.log.Info("Storage client closing")
	return sqlDB.Close()
}

// sqliteDSN turns on foreign keys (needed for ON DELETE CASCADE) and a busy
// timeout for every pooled connection.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = "foodexplorer.db"
	}
	params := []string{}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
		params = append(params, "_foreign_keys=1")
	}
	if !strings.Contains(dsn, "_busy_timeout") {
		params = append(params, "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func newGormLogger(silent bool) gormLogger.Interface {
	if silent {
		return gormLogger.Default.LogMode(gormLogger.Silent)
	}
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

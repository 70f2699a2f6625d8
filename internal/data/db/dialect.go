package db

import "fmt"

// Dialect hides the SQL differences between the supported engines.
type Dialect interface {
	Name() string
	// StringAgg joins column values of a group with "," ordered by orderBy.
	StringAgg(column, orderBy string) string
	// PrimaryKey is the column definition of an auto-increment id.
	PrimaryKey() string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return DriverSQLite }

// GROUP_CONCAT with ORDER BY needs SQLite 3.44+, bundled by go-sqlite3 1.14.22.
func (sqliteDialect) StringAgg(column, orderBy string) string {
	return fmt.Sprintf("GROUP_CONCAT(%s, ',' ORDER BY %s)", column, orderBy)
}

func (sqliteDialect) PrimaryKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

type postgresDialect struct{}

func (postgresDialect) Name() string { return DriverPostgres }

func (postgresDialect) StringAgg(column, orderBy string) string {
	return fmt.Sprintf("STRING_AGG(%s, ',' ORDER BY %s)", column, orderBy)
}

func (postgresDialect) PrimaryKey() string { return "BIGSERIAL PRIMARY KEY" }

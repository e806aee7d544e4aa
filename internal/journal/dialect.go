package journal

import (
	"fmt"
	"strings"
)

// Dialect abstracts the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given position (1-indexed).
	Placeholder(position int) string

	// SupportsLastInsertID returns true if the driver implements LastInsertId().
	SupportsLastInsertID() bool

	// ReturningClause returns the clause appended to INSERT statements to read back column.
	ReturningClause(column string) string

	// InitStatements run once after the connection opens.
	InitStatements() []string

	// SerialPrimaryKey is the column definition of an auto-incrementing id.
	SerialPrimaryKey() string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a new Dialect for the given type.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}

// SQLiteDialect implements Dialect for the modernc.org/sqlite driver.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string                   { return "sqlite" }
func (d *SQLiteDialect) Placeholder(position int) string      { return "?" }
func (d *SQLiteDialect) SupportsLastInsertID() bool           { return true }
func (d *SQLiteDialect) ReturningClause(column string) string { return "" }
func (d *SQLiteDialect) SerialPrimaryKey() string             { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

// InitStatements enables WAL so the preview server can read while the CLI writes.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// PostgresDialect implements Dialect for the lib/pq driver.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string              { return "postgres" }
func (d *PostgresDialect) Placeholder(position int) string { return fmt.Sprintf("$%d", position) }
func (d *PostgresDialect) SupportsLastInsertID() bool      { return false }
func (d *PostgresDialect) InitStatements() []string        { return nil }
func (d *PostgresDialect) SerialPrimaryKey() string        { return "BIGSERIAL PRIMARY KEY" }

func (d *PostgresDialect) ReturningClause(column string) string {
	return fmt.Sprintf(" RETURNING %s", column)
}

// QueryBuilder converts SQL written with ? placeholders to the dialect's form.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build rewrites every ? to the dialect placeholder for its position.
//
//	input:    "SELECT * FROM casts WHERE spell_id = ? LIMIT ?"
//	SQLite:   unchanged
//	Postgres: "SELECT * FROM casts WHERE spell_id = $1 LIMIT $2"
func (qb *QueryBuilder) Build(query string) string {
	if qb.dialect.Placeholder(1) == "?" {
		return query
	}

	var result strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}
	return result.String()
}

// BuildWithReturning appends a RETURNING clause when the dialect cannot
// report the inserted id through LastInsertId.
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	converted := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		converted += qb.dialect.ReturningClause(column)
	}
	return converted
}

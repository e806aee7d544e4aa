// Package journal records resolved casts so spell geometry can be reviewed
// across maps and upgrade sets. It stores to SQLite by default and to
// PostgreSQL when configured.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Earlh21/rw-cradle/internal/geom"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Record is one resolved cast.
type Record struct {
	ID            int64
	SpellID       string
	Caster        geom.Point
	Target        geom.Point
	Upgrades      []string
	Fingerprint   string // Board digest before the cast
	ImpactedTiles int
	Batches       int
	CreatedAt     time.Time
}

// Summary aggregates the casts of one spell.
type Summary struct {
	SpellID     string
	Casts       int
	AvgImpacted float64
	AvgBatches  float64
}

// Journal wraps the database connection.
type Journal struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects to the configured database and creates the schema.
func Open(cfg Config) (*Journal, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case *PostgresDialect:
		dsn = cfg.Postgres.DSN()
	default:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite journal requires a path")
		}
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
				return nil, fmt.Errorf("failed to create journal directory: %w", err)
			}
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		if cfg.Postgres.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		}
		if cfg.Postgres.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		}
		if cfg.Postgres.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	} else {
		// One connection keeps ":memory:" databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize journal (%s): %w", stmt, err)
		}
	}

	j := &Journal{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS casts (
			id ` + j.dialect.SerialPrimaryKey() + `,
			spell_id TEXT NOT NULL,
			caster_x INTEGER NOT NULL,
			caster_y INTEGER NOT NULL,
			target_x INTEGER NOT NULL,
			target_y INTEGER NOT NULL,
			upgrades TEXT NOT NULL DEFAULT '',
			board_fingerprint TEXT NOT NULL,
			impacted_tiles INTEGER NOT NULL,
			batches INTEGER NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_casts_spell_id ON casts(spell_id)`,
	}

	for _, m := range migrations {
		if _, err := j.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// RecordCast stores r and returns its id. A zero CreatedAt is set to now.
func (j *Journal) RecordCast(ctx context.Context, r Record) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := j.qb.BuildWithReturning(`INSERT INTO casts
		(spell_id, caster_x, caster_y, target_x, target_y, upgrades, board_fingerprint, impacted_tiles, batches, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, "id")
	args := []any{
		r.SpellID, r.Caster.X, r.Caster.Y, r.Target.X, r.Target.Y,
		strings.Join(r.Upgrades, ","), r.Fingerprint, r.ImpactedTiles, r.Batches,
		r.CreatedAt.UnixMilli(),
	}

	if !j.dialect.SupportsLastInsertID() {
		var id int64
		if err := j.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to record cast: %w", err)
		}
		return id, nil
	}

	res, err := j.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to record cast: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read cast id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit casts, newest first. An empty spellID matches every spell.
func (j *Journal) Recent(ctx context.Context, spellID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, spell_id, caster_x, caster_y, target_x, target_y, upgrades,
		board_fingerprint, impacted_tiles, batches, created_at FROM casts`
	var args []any
	if spellID != "" {
		query += ` WHERE spell_id = ?`
		args = append(args, spellID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	return j.queryRecords(ctx, query, args...)
}

// After returns up to limit casts with an id above afterID, oldest first.
// Paging with the last id seen walks the whole journal.
func (j *Journal) After(ctx context.Context, afterID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	return j.queryRecords(ctx, `SELECT id, spell_id, caster_x, caster_y, target_x, target_y, upgrades,
		board_fingerprint, impacted_tiles, batches, created_at FROM casts
		WHERE id > ? ORDER BY id LIMIT ?`, afterID, limit)
}

func (j *Journal) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx, j.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query casts: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var upgrades string
		var created int64
		if err := rows.Scan(&r.ID, &r.SpellID, &r.Caster.X, &r.Caster.Y, &r.Target.X, &r.Target.Y,
			&upgrades, &r.Fingerprint, &r.ImpactedTiles, &r.Batches, &created); err != nil {
			return nil, fmt.Errorf("failed to scan cast: %w", err)
		}
		if upgrades != "" {
			r.Upgrades = strings.Split(upgrades, ",")
		}
		r.CreatedAt = time.UnixMilli(created)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read casts: %w", err)
	}
	return out, nil
}

// Copy appends every cast in src to dst, oldest first, in pages of
// pageSize. Ids are reassigned by dst. It returns the number copied.
func Copy(ctx context.Context, dst, src *Journal, pageSize int) (int, error) {
	var last int64
	copied := 0
	for {
		page, err := src.After(ctx, last, pageSize)
		if err != nil {
			return copied, err
		}
		if len(page) == 0 {
			return copied, nil
		}
		for _, r := range page {
			if _, err := dst.RecordCast(ctx, r); err != nil {
				return copied, fmt.Errorf("cast %d: %w", r.ID, err)
			}
			copied++
			last = r.ID
		}
	}
}

// Summaries returns per-spell aggregates ordered by spell id.
func (j *Journal) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT spell_id, COUNT(*),
		AVG(CAST(impacted_tiles AS DOUBLE PRECISION)), AVG(CAST(batches AS DOUBLE PRECISION))
		FROM casts GROUP BY spell_id ORDER BY spell_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize casts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.SpellID, &s.Casts, &s.AvgImpacted, &s.AvgBatches); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summaries: %w", err)
	}
	return out, nil
}

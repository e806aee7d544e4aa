package journal

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(DefaultConfig(filepath.Join(t.TempDir(), "journal", "casts.db")))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "casts.db")
	j, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Journal file was not created in nested directory")
	}

	var count int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM casts").Scan(&count); err != nil {
		t.Errorf("Failed to query casts table: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(Config{Driver: "sqlite"}); err == nil {
		t.Error("Open accepted an empty sqlite path")
	}
}

func TestOpenInMemory(t *testing.T) {
	j, err := Open(DefaultConfig(":memory:"))
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	defer j.Close()

	if _, err := j.RecordCast(context.Background(), Record{SpellID: "mana_pulse", Fingerprint: "x"}); err != nil {
		t.Fatalf("RecordCast: %v", err)
	}
	recent, err := j.Recent(context.Background(), "", 5)
	if err != nil || len(recent) != 1 {
		t.Errorf("Recent = %v, %v; want one record", recent, err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := j.RecordCast(ctx, Record{
		SpellID:       "hollow_spear",
		Caster:        geom.Pt(1, 2),
		Target:        geom.Pt(7, 2),
		Upgrades:      []string{"barrage", "radius"},
		Fingerprint:   "abc",
		ImpactedTiles: 27,
		Batches:       7,
		CreatedAt:     created,
	})
	if err != nil {
		t.Fatalf("RecordCast: %v", err)
	}
	second, err := j.RecordCast(ctx, Record{SpellID: "mana_pulse", Fingerprint: "def", ImpactedTiles: 48, Batches: 7})
	if err != nil {
		t.Fatalf("RecordCast: %v", err)
	}
	if second <= first {
		t.Errorf("ids not increasing: %d then %d", first, second)
	}

	all, err := j.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 2 || all[0].ID != second || all[1].ID != first {
		t.Fatalf("Recent order = %+v, want newest first", all)
	}

	got := all[1]
	if got.Caster != geom.Pt(1, 2) || got.Target != geom.Pt(7, 2) {
		t.Errorf("points = %v -> %v", got.Caster, got.Target)
	}
	if len(got.Upgrades) != 2 || got.Upgrades[0] != "barrage" || got.Upgrades[1] != "radius" {
		t.Errorf("upgrades = %v", got.Upgrades)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if all[0].Upgrades != nil {
		t.Errorf("empty upgrades read back as %v", all[0].Upgrades)
	}
	if all[0].CreatedAt.IsZero() {
		t.Error("zero CreatedAt was not filled in")
	}

	spears, err := j.Recent(ctx, "hollow_spear", 10)
	if err != nil {
		t.Fatalf("Recent(hollow_spear): %v", err)
	}
	if len(spears) != 1 || spears[0].Fingerprint != "abc" {
		t.Errorf("filtered Recent = %+v", spears)
	}
}

func TestRecentLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		if _, err := j.RecordCast(ctx, Record{SpellID: "empty_palm", Fingerprint: strconv.Itoa(i)}); err != nil {
			t.Fatalf("RecordCast: %v", err)
		}
	}

	if got, _ := j.Recent(ctx, "", 3); len(got) != 3 {
		t.Errorf("limit 3 returned %d", len(got))
	}
	if got, _ := j.Recent(ctx, "", 0); len(got) != 20 {
		t.Errorf("default limit returned %d, want 20", len(got))
	}
}

func TestAfterAndCopy(t *testing.T) {
	src := openTestJournal(t)
	dst := openTestJournal(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		if _, err := src.RecordCast(ctx, Record{
			SpellID:     "hollow_spear",
			Fingerprint: strconv.Itoa(i),
			Upgrades:    []string{"barrage"},
		}); err != nil {
			t.Fatalf("RecordCast: %v", err)
		}
	}

	page, err := src.After(ctx, 2, 3)
	if err != nil {
		t.Fatalf("After: %v", err)
	}
	if len(page) != 3 || page[0].ID != 3 || page[2].ID != 5 {
		t.Errorf("After(2, 3) = %+v", page)
	}

	n, err := Copy(ctx, dst, src, 2)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if n != 7 {
		t.Errorf("copied %d, want 7", n)
	}
	got, err := dst.After(ctx, 0, 0)
	if err != nil {
		t.Fatalf("After: %v", err)
	}
	if len(got) != 7 || got[0].Fingerprint != "0" || got[6].Fingerprint != "6" {
		t.Errorf("copied records out of order: %+v", got)
	}
	if len(got[3].Upgrades) != 1 || got[3].Upgrades[0] != "barrage" {
		t.Errorf("upgrades lost: %+v", got[3])
	}
}

func TestSummaries(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	records := []Record{
		{SpellID: "mana_pulse", ImpactedTiles: 10, Batches: 4},
		{SpellID: "mana_pulse", ImpactedTiles: 20, Batches: 6},
		{SpellID: "helix_beam", ImpactedTiles: 9, Batches: 3},
	}
	for _, r := range records {
		if _, err := j.RecordCast(ctx, r); err != nil {
			t.Fatalf("RecordCast: %v", err)
		}
	}

	sums, err := j.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	if sums[0].SpellID != "helix_beam" || sums[0].Casts != 1 {
		t.Errorf("first summary = %+v", sums[0])
	}
	if s := sums[1]; s.SpellID != "mana_pulse" || s.Casts != 2 || s.AvgImpacted != 15 || s.AvgBatches != 5 {
		t.Errorf("mana_pulse summary = %+v", s)
	}
}

func TestQueryBuilder(t *testing.T) {
	query := "SELECT * FROM casts WHERE spell_id = ? AND batches > ?"

	tests := []struct {
		name      string
		dialect   DialectType
		want      string
		returning string
	}{
		{"sqlite", DialectSQLite, query, query},
		{"postgres", DialectPostgres,
			"SELECT * FROM casts WHERE spell_id = $1 AND batches > $2",
			"SELECT * FROM casts WHERE spell_id = $1 AND batches > $2 RETURNING id"},
		{"unknown_defaults_to_sqlite", "oracle", query, query},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder(NewDialect(tt.dialect))
			if got := qb.Build(query); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
			if got := qb.BuildWithReturning(query, "id"); got != tt.returning {
				t.Errorf("BuildWithReturning() = %q, want %q", got, tt.returning)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.User = "cradle"
	cfg.Password = "secret"
	cfg.Database = "casts"

	want := "host=localhost port=5432 user=cradle password=secret dbname=casts sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// Set CRADLE_TEST_POSTGRES_HOST (and optionally _USER, _PASSWORD, _DATABASE)
// to run the journal against a live PostgreSQL server.
func TestPostgresJournal(t *testing.T) {
	host := os.Getenv("CRADLE_TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("CRADLE_TEST_POSTGRES_HOST not set")
	}

	cfg := Config{Driver: "postgres", Postgres: DefaultPostgresConfig()}
	cfg.Postgres.Host = host
	cfg.Postgres.User = envOr("CRADLE_TEST_POSTGRES_USER", "cradle")
	cfg.Postgres.Password = envOr("CRADLE_TEST_POSTGRES_PASSWORD", "cradle")
	cfg.Postgres.Database = envOr("CRADLE_TEST_POSTGRES_DATABASE", "cradle_test")

	j, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open postgres: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	id, err := j.RecordCast(ctx, Record{SpellID: "pg_probe", Fingerprint: "pg", ImpactedTiles: 3, Batches: 1})
	if err != nil {
		t.Fatalf("RecordCast: %v", err)
	}
	defer j.db.Exec("DELETE FROM casts WHERE spell_id = $1", "pg_probe")

	recent, err := j.Recent(ctx, "pg_probe", 1)
	if err != nil || len(recent) != 1 || recent[0].ID != id {
		t.Errorf("Recent = %+v, %v; want id %d", recent, err, id)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// migrate-to-postgres copies the cast journal from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/journal.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user cradle \
//	    -pg-password cradle \
//	    -pg-database cradle
package main

import (
	"context"
	"flag"
	"log"

	"github.com/Earlh21/rw-cradle/internal/journal"
)

func main() {
	// Parse command-line flags
	sqlitePath := flag.String("sqlite", "data/journal.db", "Path to SQLite journal")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "cradle", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "cradle", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "cradle", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	pageSize := flag.Int("page-size", 500, "Casts copied per query")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("Journal SQLite to PostgreSQL Migration")
	log.Println("======================================")

	log.Printf("Opening SQLite journal: %s", *sqlitePath)
	src, err := journal.Open(journal.DefaultConfig(*sqlitePath))
	if err != nil {
		log.Fatalf("Failed to open SQLite journal: %v", err)
	}
	defer src.Close()

	ctx := context.Background()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
		summaries, err := src.Summaries(ctx)
		if err != nil {
			log.Fatalf("Failed to read journal: %v", err)
		}
		total := 0
		for _, s := range summaries {
			log.Printf("  %-20s %d casts", s.SpellID, s.Casts)
			total += s.Casts
		}
		log.Printf("Would migrate %d casts", total)
		return
	}

	pg := journal.DefaultPostgresConfig()
	pg.Host = *pgHost
	pg.Port = *pgPort
	pg.User = *pgUser
	pg.Password = *pgPassword
	pg.Database = *pgDatabase
	pg.SSLMode = *pgSSLMode
	pgCfg := journal.Config{Driver: string(journal.DialectPostgres), Postgres: pg}
	log.Printf("Opening PostgreSQL journal: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	dst, err := journal.Open(pgCfg)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL journal: %v", err)
	}
	defer dst.Close()

	n, err := journal.Copy(ctx, dst, src, *pageSize)
	if err != nil {
		log.Fatalf("Migration stopped after %d casts: %v", n, err)
	}

	log.Println("======================================")
	log.Printf("Migration complete! Casts migrated: %d", n)
}

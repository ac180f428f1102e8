package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gutenberg-catalog/internal/config"
	"gutenberg-catalog/internal/infrastructure/database"

	"github.com/joho/godotenv"
)

// introspect prints the catalog schema and row counts. Useful after
// restoring a Gutenberg dump to verify the import looks sane.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("Failed to load database config: %v", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	tables, err := listCatalogTables(ctx, db)
	if err != nil {
		log.Fatalf("Failed to list tables: %v", err)
	}

	for _, table := range tables {
		if err := describeTable(ctx, db, table); err != nil {
			log.Fatalf("Failed to describe %s: %v", table, err)
		}
	}
}

func listCatalogTables(ctx context.Context, db *database.PostgresDB) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name LIKE 'books_%'
		ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func describeTable(ctx context.Context, db *database.PostgresDB, table string) error {
	fmt.Printf("\n=== %s ===\n", table)

	rows, err := db.Pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var column, dataType, nullable string
		if err := rows.Scan(&column, &dataType, &nullable); err != nil {
			return err
		}
		null := ""
		if nullable == "YES" {
			null = " NULL"
		}
		fmt.Printf("  %-24s %s%s\n", column, dataType, null)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// information_schema holds no row counts, so count directly. The
	// table name comes from the catalog itself, never user input.
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := db.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return err
	}
	fmt.Printf("  rows: %d\n", count)

	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewDB opens a PostgreSQL connection pool and verifies it with a ping.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitSchema creates the tables if they do not exist. Agreement jurisdiction
// and history records live in jsonb columns alongside the row they belong to.
func InitSchema(ctx context.Context, db *sql.DB, agreementsTable, themesTable string) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				title TEXT NOT NULL,
				summary TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL,
				deadline DATE,
				source_url TEXT,
				launch_date DATE,
				theme TEXT,
				jurisdictions JSONB NOT NULL DEFAULT '[]',
				agreement_history JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, agreementsTable),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, themesTable),
		`
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

func InitDB(ctx context.Context, dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrations is the ordered, idempotent schema. Ids are generated by the
// application.
var Migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(64) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS components (
		category VARCHAR(32) NOT NULL,
		id INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		brand VARCHAR(100) NOT NULL DEFAULT '',
		ram_type VARCHAR(16) NOT NULL DEFAULT '',
		form_factor VARCHAR(32) NOT NULL DEFAULT '',
		cores INTEGER NOT NULL DEFAULT 0,
		memory VARCHAR(32) NOT NULL DEFAULT '',
		capacity VARCHAR(32) NOT NULL DEFAULT '',
		wattage INTEGER NOT NULL DEFAULT 0,
		vendors JSONB NOT NULL DEFAULT '[]',
		specs JSONB,
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW(),
		PRIMARY KEY (category, id)
	)`,

	`CREATE TABLE IF NOT EXISTS threads (
		id UUID PRIMARY KEY,
		user_name VARCHAR(64) NOT NULL,
		title VARCHAR(255) NOT NULL,
		category VARCHAR(64) NOT NULL DEFAULT 'General',
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS replies (
		id UUID PRIMARY KEY,
		thread_id UUID NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
		user_name VARCHAR(64) NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS saved_builds (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		items JSONB NOT NULL,
		total_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_components_brand ON components(LOWER(brand))`,
	`CREATE INDEX IF NOT EXISTS idx_threads_created_at ON threads(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_replies_thread_id ON replies(thread_id)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_builds_user_id ON saved_builds(user_id)`,
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, migration := range Migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// schema is written once for both dialects; {{pk}} and {{timestamp}} are filled per driver.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS services (
		id {{pk}},
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price INTEGER NOT NULL,
		category TEXT NOT NULL,
		duration INTEGER NOT NULL DEFAULT 60,
		popular BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at {{timestamp}}
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id {{pk}},
		author_name TEXT NOT NULL,
		author_avatar TEXT,
		rating INTEGER NOT NULL CONSTRAINT reviews_rating_range CHECK (rating >= 1 AND rating <= 5),
		review_text TEXT NOT NULL,
		service_name TEXT,
		pet_type TEXT,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{timestamp}}
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id {{pk}},
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_email TEXT,
		pet_name TEXT NOT NULL,
		pet_breed TEXT NOT NULL,
		service_name TEXT NOT NULL,
		service_price INTEGER NOT NULL,
		booking_date DATE NOT NULL,
		booking_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT,
		created_at {{timestamp}}
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id {{pk}},
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		total_amount INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		items_json TEXT NOT NULL,
		created_at {{timestamp}}
	)`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id {{pk}},
		title TEXT NOT NULL,
		excerpt TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		author TEXT NOT NULL,
		read_time TEXT NOT NULL,
		image_url TEXT,
		published BOOLEAN NOT NULL DEFAULT TRUE,
		views INTEGER NOT NULL DEFAULT 0,
		created_at {{timestamp}}
	)`,
	`CREATE TABLE IF NOT EXISTS gallery (
		id {{pk}},
		title TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		image_url TEXT,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at {{timestamp}}
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id {{pk}},
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		message TEXT NOT NULL,
		responded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at {{timestamp}}
	)`,

	// At most one pending or confirmed booking per slot.
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_active_slot_key
		ON bookings (booking_date, booking_time)
		WHERE status IN ('pending', 'confirmed')`,
	`CREATE INDEX IF NOT EXISTS reviews_approved_rating_idx ON reviews (approved, rating)`,
	`CREATE INDEX IF NOT EXISTS blog_posts_published_category_idx ON blog_posts (published, category)`,
	`CREATE INDEX IF NOT EXISTS services_active_category_idx ON services (active, category)`,
}

func dialectReplacer(driver string) *strings.Replacer {
	if driver == DriverPostgres {
		return strings.NewReplacer(
			"{{pk}}", "BIGSERIAL PRIMARY KEY",
			"{{timestamp}}", "TIMESTAMPTZ NOT NULL DEFAULT NOW()",
		)
	}
	return strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{timestamp}}", "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP",
	)
}

// Migrate creates missing tables and indexes. Safe to run on every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	replacer := dialectReplacer(db.DriverName())

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, replacer.Replace(stmt)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}

	log.Info().Int("statements", len(schema)).Msg("Database schema is up to date")
	return nil
}

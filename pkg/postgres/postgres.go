package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/dskendzo/eventplanner/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			avatar VARCHAR(255) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			title VARCHAR(100) NOT NULL,
			description VARCHAR(1000) NOT NULL,
			category VARCHAR(20) NOT NULL DEFAULT 'other',
			location VARCHAR(255) NOT NULL,
			date TIMESTAMP NOT NULL,
			end_date TIMESTAMP NOT NULL,
			max_participants INTEGER NOT NULL DEFAULT 50,
			current_participants INTEGER NOT NULL DEFAULT 0,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			organizer_id INTEGER NOT NULL REFERENCES users(id),
			is_outside BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(20) NOT NULL DEFAULT 'draft',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// One active registration per (user, event). Cancellation deletes the
		// row, so a plain unique index is enough.
		`CREATE TABLE IF NOT EXISTS registrations (
			id SERIAL PRIMARY KEY,
			event_id INTEGER NOT NULL REFERENCES events(id),
			user_id INTEGER NOT NULL REFERENCES users(id),
			status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
			payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			payment_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			special_requirements VARCHAR(500) DEFAULT '',
			registration_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			check_in_time TIMESTAMP,
			check_out_time TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT registrations_user_event_key UNIQUE (user_id, event_id)
		)`,

		`CREATE TABLE IF NOT EXISTS comments (
			id SERIAL PRIMARY KEY,
			event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			author_id INTEGER NOT NULL REFERENCES users(id),
			parent_id INTEGER REFERENCES comments(id),
			content VARCHAR(1000) NOT NULL,
			is_edited BOOLEAN NOT NULL DEFAULT FALSE,
			edited_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_organizer_id ON events(organizer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_event_status ON registrations(event_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_user_id ON registrations(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_event_created ON comments(event_id, created_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

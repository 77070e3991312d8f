package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"listing-gallery/utils"

	_ "github.com/lib/pq"
)

// PostgresStore keeps a dataset in PostgreSQL, one JSONB document per listing
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore creates a new PostgresStore and pings the DB
func NewPostgresStore(ctx context.Context, connStr string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresStore{db: db, logger: logger}, nil
}

// CreateTable creates the listings table if it doesn't exist
func (s *PostgresStore) CreateTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS listings (
		position    INTEGER   PRIMARY KEY,
		doc         JSONB     NOT NULL,
		imported_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	s.logger.Info("Table 'listings' is ready")
	return nil
}

// Import replaces the stored dataset with the records of a dataset document in
// a single transaction, keeping their order
func (s *PostgresStore) Import(ctx context.Context, data []byte) (int, error) {
	records, err := DecodeDataset(data)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (position, doc, imported_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (position) DO UPDATE SET doc = EXCLUDED.doc, imported_at = EXCLUDED.imported_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i, string(rec)); err != nil {
			return 0, fmt.Errorf("failed to insert listing %d: %w", i, err)
		}
	}

	// drop leftovers of a longer previous import
	if _, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE position >= $1`, len(records)); err != nil {
		return 0, fmt.Errorf("failed to trim old listings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Imported %d listings into PostgreSQL", len(records))
	return len(records), nil
}

// Fetch returns the stored listings as one JSON array ordered by position
func (s *PostgresStore) Fetch(ctx context.Context) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(json_agg(doc ORDER BY position), '[]'::json) FROM listings`,
	).Scan(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	return doc, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// PostgresSource connects for a single fetch, so a connection failure is a
// fetch failure of the render pass
type PostgresSource struct {
	connStr string
	logger  *utils.Logger
}

// NewPostgresSource creates a PostgresSource
func NewPostgresSource(connStr string, logger *utils.Logger) *PostgresSource {
	return &PostgresSource{connStr: connStr, logger: logger}
}

func (s *PostgresSource) Name() string {
	return "postgres table listings"
}

func (s *PostgresSource) Fetch(ctx context.Context) ([]byte, error) {
	store, err := NewPostgresStore(ctx, s.connStr, s.logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Fetch(ctx)
}

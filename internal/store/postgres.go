package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"fragcat/internal/domain"
	"fragcat/pkg/errors"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresStore keeps one JSONB document per perfume, upserted by document
// id. updated_at is assigned by the database, never by the client.
type PostgresStore struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Table    string
}

func NewPostgresStore(cfg PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	if !tableNamePattern.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid table name %q", cfg.Table)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PostgresStore{db: db, table: cfg.Table, logger: logger}
	if err := store.ensureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("table", cfg.Table),
	)

	return store, nil
}

func (s *PostgresStore) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		doc_id     TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure table %s: %w", s.table, err)
	}
	return nil
}

// UpsertDocument inserts or replaces the flattened record for docID and lets
// the database stamp updated_at.
func (s *PostgresStore) UpsertDocument(ctx context.Context, docID string, doc *domain.UploadDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.NewStoreError("failed to marshal document", "upsert", docID, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (doc_id, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (doc_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`, s.table)

	if _, err := s.db.ExecContext(ctx, query, docID, data); err != nil {
		return errors.NewStoreError("upsert failed", "upsert", docID, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

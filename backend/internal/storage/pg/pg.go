// Package pg keeps the game document in a single PostgreSQL row.
//
// The document is stored as JSONB in the documents table (id is always 1) and
// replaced with an upsert on every save, matching the whole-document contract
// of the file store.
package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/adivinatobi/adivinatobi/backend/internal/service"
	"github.com/adivinatobi/adivinatobi/backend/internal/storage"
	"github.com/adivinatobi/adivinatobi/shared/config"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	internal_errors "github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/adivinatobi/adivinatobi/shared/metrics"

	_ "github.com/lib/pq" // Registers the PostgreSQL driver
	"github.com/pressly/goose/v3"
)

const backendName = "postgres"

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	db           *sql.DB
	defaultUsers []domain.UserName
}

var _ service.DocumentStore = (*Storage)(nil)

// ConnectionConfig holds database connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig suits a handful of friends hitting one document.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.Pg, connCfg ConnectionConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// New connects, applies pending migrations and returns the store.
func New(ctx context.Context, cfg config.Pg, defaultUsers []domain.UserName) (*Storage, error) {
	log := logger.Component("pg_store")
	log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(ctx, cfg, DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("successfully connected to db")
	return NewWithDB(db, defaultUsers), nil
}

// NewWithDB wraps an existing pool without touching the schema.
func NewWithDB(db *sql.DB, defaultUsers []domain.UserName) *Storage {
	return &Storage{db: db, defaultUsers: defaultUsers}
}

// Migrate brings the schema up to date with the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Component("migrations").Info(fmt.Sprintf(format, v...))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Component("migrations").Error(fmt.Sprintf(format, v...))
}

// Load reads the document row. A missing row yields the default document,
// which is inserted right away. A row that does not decode is an error: the
// hosted document is never replaced behind the caller's back.
func (s *Storage) Load(ctx context.Context) (doc domain.Document, err error) {
	defer func() { metrics.StoreOperations.WithLabelValues(backendName, "load", metrics.StoreResult(err)).Inc() }()

	var body []byte
	err = s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		doc = domain.NewDocument(s.defaultUsers)
		if err := s.Save(ctx, &doc); err != nil {
			return domain.Document{}, err
		}
		return doc, nil
	}
	if err != nil {
		return domain.Document{}, &internal_errors.PersistenceError{Op: "load", Err: err}
	}

	doc, migrated, err := storage.Decode(body)
	if err != nil {
		return domain.Document{}, err
	}
	if migrated {
		if err := s.Save(ctx, &doc); err != nil {
			return domain.Document{}, err
		}
		logger.Component("pg_store").Info("migrated legacy document", "threads", len(doc.Threads))
	}
	return doc, nil
}

// Save replaces the document row.
func (s *Storage) Save(ctx context.Context, doc *domain.Document) (err error) {
	defer func() { metrics.StoreOperations.WithLabelValues(backendName, "save", metrics.StoreResult(err)).Inc() }()

	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	// jsonb parameters must be sent as text; lib/pq encodes []byte as bytea
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, body, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		string(data),
	)
	if err != nil {
		return &internal_errors.PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Cleanup closes the database connection pool.
func (s *Storage) Cleanup() error {
	return s.db.Close()
}

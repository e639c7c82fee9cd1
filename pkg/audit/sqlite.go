package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/telemetry/logging"
)

// SQLiteStore persists audit records in a SQLite database. WAL mode keeps
// the recorder's writer from blocking the pruner's reads.
type SQLiteStore struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewSQLiteStore opens (or creates) the database at cfg.Path, applies the
// pragmas, and brings the schema up to the current version.
func NewSQLiteStore(cfg config.AuditSQLiteConfig, logger *logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("database path is required"))
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.initialize(cfg); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("audit sqlite store initialized",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
		"max_open_conns", maxOpen,
	)

	return s, nil
}

// initialize applies pragmas, creates the schema, and verifies its version.
func (s *SQLiteStore) initialize(cfg config.AuditSQLiteConfig) error {
	if cfg.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeout := cfg.BusyTimeout
	if busyTimeout == 0 {
		busyTimeout = 5 * time.Second
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(getSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists one audit record.
func (s *SQLiteStore) Store(ctx context.Context, record *Record) error {
	const insert = `
		INSERT INTO audit_records (
			id, request_id, recorded_at,
			endpoint, model, provider_state,
			outcome, fallback, status_code, latency_ms,
			prompt_tokens, completion_tokens, total_tokens,
			error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorVal interface{}
	if record.Error != "" {
		errorVal = record.Error
	}

	_, err := s.db.ExecContext(ctx, insert,
		record.ID, record.RequestID, record.Time,
		record.Endpoint, record.Model, record.ProviderState,
		record.Outcome, record.Fallback, record.StatusCode, record.Latency.Milliseconds(),
		record.PromptTokens, record.CompletionTokens, record.TotalTokens,
		errorVal,
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_records").Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore removes records recorded before the cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM audit_records WHERE recorded_at < ?", cutoff)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return deleted, nil
}

// DeleteOldest removes the n oldest records.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	const del = `
		DELETE FROM audit_records WHERE id IN (
			SELECT id FROM audit_records ORDER BY recorded_at ASC LIMIT ?
		)
	`
	result, err := s.db.ExecContext(ctx, del, n)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return deleted, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

// getByID reads one record back (for testing).
func (s *SQLiteStore) getByID(ctx context.Context, id string) (*Record, error) {
	const query = `
		SELECT id, request_id, recorded_at,
			endpoint, model, provider_state,
			outcome, fallback, status_code, latency_ms,
			prompt_tokens, completion_tokens, total_tokens,
			error
		FROM audit_records WHERE id = ?
	`

	var record Record
	var latencyMs int64
	var errorVal sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.RequestID, &record.Time,
		&record.Endpoint, &record.Model, &record.ProviderState,
		&record.Outcome, &record.Fallback, &record.StatusCode, &latencyMs,
		&record.PromptTokens, &record.CompletionTokens, &record.TotalTokens,
		&errorVal,
	)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}

	record.Latency = time.Duration(latencyMs) * time.Millisecond
	if errorVal.Valid {
		record.Error = errorVal.String
	}
	return &record, nil
}

// NewStore builds the configured audit store backend.
func NewStore(cfg *config.AuditConfig, logger *logging.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.SQLite, logger)
	default:
		return nil, NewStorageError(cfg.Backend, "open", errors.New("unknown backend"))
	}
}

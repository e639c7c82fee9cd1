package sessions

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/behark/ai/pkg/config"
)

const (
	defaultBusyTimeout        = 5 * time.Second
	defaultCheckpointInterval = 5 * time.Minute
)

// SQLiteStore implements Store using SQLite for persistence, so the
// session count survives gateway restarts. It is suitable for
// single-instance deployments.
//
// SQLiteStore uses a write-ahead log (WAL) for better concurrent
// performance and periodic passive checkpoints to bound the WAL size.
type SQLiteStore struct {
	db        *sql.DB
	done      chan struct{}
	closeOnce sync.Once

	saveStmt  *sql.Stmt
	countStmt *sql.Stmt
}

// NewSQLiteStore creates a SQLite-backed session store at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		dbPath, int(defaultBusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:   db,
		done: make(chan struct{}),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	go store.checkpointLoop()

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		endpoint TEXT NOT NULL,
		model TEXT NOT NULL,
		prompt_words INTEGER NOT NULL,
		completion_words INTEGER NOT NULL,
		success INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON chat_sessions(started_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_model ON chat_sessions(model);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.saveStmt, err = s.db.Prepare(`
		INSERT INTO chat_sessions (id, started_at, endpoint, model, prompt_words, completion_words, success)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare save statement: %w", err)
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM chat_sessions`)
	if err != nil {
		return fmt.Errorf("failed to prepare count statement: %w", err)
	}

	return nil
}

// Save persists a session.
func (s *SQLiteStore) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	success := 0
	if session.Success {
		success = 1
	}

	_, err := s.saveStmt.ExecContext(ctx,
		session.ID,
		session.Time.Unix(),
		session.Endpoint,
		session.Model,
		session.PromptWords,
		session.CompletionWords,
		success,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Count returns the number of stored sessions.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Close releases any resources held by the store.
// Close is idempotent and safe to call multiple times.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		if s.saveStmt != nil {
			s.saveStmt.Close()
		}
		if s.countStmt != nil {
			s.countStmt.Close()
		}

		if s.db != nil {
			// Run final checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// getByID reads one session back (for testing).
func (s *SQLiteStore) getByID(ctx context.Context, id string) (*Session, error) {
	const query = `
		SELECT id, started_at, endpoint, model, prompt_words, completion_words, success
		FROM chat_sessions WHERE id = ?
	`

	var (
		session   Session
		startedAt int64
		success   int
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&startedAt,
		&session.Endpoint,
		&session.Model,
		&session.PromptWords,
		&session.CompletionWords,
		&success,
	)
	if err != nil {
		return nil, err
	}

	session.Time = time.Unix(startedAt, 0)
	session.Success = success == 1
	return &session, nil
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteStore) checkpointLoop() {
	ticker := time.NewTicker(defaultCheckpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}

// NewStore builds the Store named by the configuration. An empty backend
// selects memory.
func NewStore(cfg *config.SessionsConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown sessions backend %q", cfg.Backend)
	}
}

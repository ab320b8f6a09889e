package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/vmt/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/vmt/internal/core/domain"
)

// Store is a SQLite bundle file.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the bundle at path and applies migrations.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating bundle directory: %w", err)
		}
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close checkpoints the WAL so the bundle is a single file, then closes it.
func (s *Store) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every embedded migration newer than the recorded
// schema version, each in its own transaction.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	all, err := migrations.All()
	if err != nil {
		return err
	}
	for _, m := range migrations.After(all, current) {
		if err := s.apply(m); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func (s *Store) apply(m migrations.Migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.Up); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveSession writes session, replacing any earlier copy with the same ID.
func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("saving session: %w", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"selections", "queries", "sessions"} {
		col := "session_id"
		if table == "sessions" {
			col = "id"
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+col+" = ?", session.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	createdAt, updatedAt := session.CreatedAt, session.UpdatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, text, media_type, analyzer, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, session.ID, session.Text, string(session.MediaType), session.Analyzer, createdAt.UTC(), updatedAt.UTC()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	for i, q := range session.Queries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO queries (session_id, position, query) VALUES (?, ?, ?)`,
			session.ID, i, q); err != nil {
			return fmt.Errorf("saving query %q: %w", q, err)
		}
	}

	for _, item := range session.ExportRows() {
		extra, err := json.Marshal(item.Extra)
		if err != nil {
			return fmt.Errorf("marshalling extra: %w", err)
		}
		if item.Extra == nil {
			extra = []byte("{}")
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO selections
				(session_id, query, title, provider, url, thumb, author, license, media_type, duration, extra)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, session.ID, item.Query, item.Title, item.Provider, item.URL, item.Thumb, item.Author,
			item.License, string(item.MediaType), item.Duration, string(extra)); err != nil {
			return fmt.Errorf("saving selection %q: %w", item.Query, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// GetSession reads a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, media_type, analyzer, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	var session domain.Session
	var mediaType string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&session.ID, &session.Text, &mediaType, &session.Analyzer, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	session.MediaType = domain.MediaType(mediaType)
	if createdAt.Valid {
		session.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		session.UpdatedAt = updatedAt.Time
	}

	queries, err := s.queries(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Queries = queries

	selected, err := s.selections(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Selected = selected

	return &session, nil
}

// SessionIDs lists the sessions in the bundle, oldest first.
func (s *Store) SessionIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) queries(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT query FROM queries WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close()

	queries := []string{}
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

func (s *Store) selections(ctx context.Context, sessionID string) (map[string]domain.MediaResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, title, provider, url, thumb, author, license, media_type, duration, extra
		FROM selections WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing selections: %w", err)
	}
	defer rows.Close()

	selected := make(map[string]domain.MediaResult)
	for rows.Next() {
		var item domain.MediaResult
		var mediaType, extra string
		if err := rows.Scan(&item.Query, &item.Title, &item.Provider, &item.URL, &item.Thumb,
			&item.Author, &item.License, &mediaType, &item.Duration, &extra); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		item.MediaType = domain.MediaType(mediaType)
		if extra != "" && extra != "{}" {
			if err := json.Unmarshal([]byte(extra), &item.Extra); err != nil {
				return nil, fmt.Errorf("unmarshaling extra: %w", err)
			}
		}
		selected[item.Query] = item
	}
	return selected, rows.Err()
}

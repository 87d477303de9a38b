package drafts

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// NewSQLiteStore opens (and if needed creates) a draft database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ErrDatabaseOpenFailed.Wrap(err).WithContext("path", dbPath)
	}
	// A second connection to ":memory:" would see a different, empty database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, ErrInitializeSchemaFailed.Wrap(err).WithContext("path", dbPath)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		name TEXT PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		text TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_drafts_updated_at ON drafts(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save creates or replaces a draft.
func (s *SQLiteStore) Save(ctx context.Context, name, text string) (Draft, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Draft{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev *Draft
	existing, err := s.load(ctx, name)
	switch {
	case err == nil:
		prev = &existing
	case !errors.Is(err, ErrDraftNotFound):
		return Draft{}, err
	}

	d := next(prev, name, text, s.now())
	if prev != nil && prev.Fingerprint == d.Fingerprint {
		return d, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (name, id, text, fingerprint, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET text = excluded.text, fingerprint = excluded.fingerprint, updated_at = excluded.updated_at`,
		d.Name, d.ID.String(), d.Text, d.Fingerprint, d.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return Draft{}, ErrWriteFailed.Wrap(err).WithContext("draft", name)
	}
	return d, nil
}

// Load returns a draft by name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (Draft, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Draft{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, name)
}

func (s *SQLiteStore) load(ctx context.Context, name string) (Draft, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT name, id, text, fingerprint, updated_at FROM drafts WHERE name = ?", name)
	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, notFound(name)
	}
	if err != nil {
		return Draft{}, ErrQueryFailed.Wrap(err).WithContext("draft", name)
	}
	return d, nil
}

// List returns all drafts ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, id, text, fingerprint, updated_at FROM drafts ORDER BY name")
	if err != nil {
		return nil, ErrQueryFailed.Wrap(err)
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, ErrQueryFailed.Wrap(err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrQueryFailed.Wrap(err)
	}
	return out, nil
}

// Delete removes a draft by name.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE name = ?", name)
	if err != nil {
		return ErrWriteFailed.Wrap(err).WithContext("draft", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ErrWriteFailed.Wrap(err).WithContext("draft", name)
	}
	if n == 0 {
		return notFound(name)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (Draft, error) {
	var (
		d       Draft
		id      string
		updated int64
	)
	if err := row.Scan(&d.Name, &id, &d.Text, &d.Fingerprint, &updated); err != nil {
		return Draft{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Draft{}, err
	}
	d.ID = parsed
	d.UpdatedAt = time.Unix(0, updated)
	return d, nil
}

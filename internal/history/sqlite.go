package history

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// NewSQLiteStore opens (creating when needed) the history database at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.HistoryError("open history database").WithCause(err).
			WithContext("path", dbPath).
			Build()
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, errors.HistoryError("initialize history schema").WithCause(err).
			WithContext("path", dbPath).
			Build()
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS renders (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		config_digest TEXT NOT NULL,
		input_digest TEXT NOT NULL,
		output_digest TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		year INTEGER NOT NULL,
		files INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_renders_input ON renders(input_digest);
	CREATE INDEX IF NOT EXISTS idx_renders_created ON renders(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts r with a fresh ID and creation time.
func (s *SQLiteStore) Record(ctx context.Context, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO renders (id, created_at, config_digest, input_digest, output_digest, output_dir, year, files, errors, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixMilli(), r.ConfigDigest, r.InputDigest, r.OutputDigest, r.OutputDir,
		r.Year, r.Files, r.Errors, r.Warnings,
	)
	if err != nil {
		return Record{}, errors.HistoryError("insert render record").WithCause(err).Build()
	}
	return r, nil
}

const selectColumns = `SELECT id, created_at, config_digest, input_digest, output_digest, output_dir, year, files, errors, warnings FROM renders`

// Last returns the most recent record.
func (s *SQLiteStore) Last(ctx context.Context) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOne(ctx, selectColumns+` ORDER BY seq DESC LIMIT 1`)
}

// LastForInput returns the most recent record with inputDigest.
func (s *SQLiteStore) LastForInput(ctx context.Context, inputDigest string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOne(ctx, selectColumns+` WHERE input_digest = ? ORDER BY seq DESC LIMIT 1`, inputDigest)
}

// List returns records newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.HistoryError("query render records").WithCause(err).Build()
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.HistoryError("iterate render records").WithCause(err).Build()
	}
	return records, nil
}

func (s *SQLiteStore) queryOne(ctx context.Context, query string, args ...any) (*Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	var createdMillis int64
	err := row.Scan(&r.ID, &createdMillis, &r.ConfigDigest, &r.InputDigest, &r.OutputDigest, &r.OutputDir,
		&r.Year, &r.Files, &r.Errors, &r.Warnings)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Record{}, err
	}
	if err != nil {
		return Record{}, errors.HistoryError("scan render record").WithCause(err).Build()
	}
	r.CreatedAt = time.UnixMilli(createdMillis).UTC()
	return r, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

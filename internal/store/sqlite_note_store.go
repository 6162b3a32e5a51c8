package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"

	"daywise/internal/types"
)

var (
	//go:embed files/create_notes_tables.sql
	createNotesTablesSQL string
)

const (
	selectNoteColumns = "SELECT id, title, content, priority, created_on, updated_on FROM notes"
	orderByRecency    = " ORDER BY updated_on DESC, id ASC"
	orderByPriority   = " ORDER BY priority ASC, updated_on DESC, id ASC"
)

type SQLiteNoteStore struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenSQLiteNoteStore(path string) (*SQLiteNoteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps the embedded store single-writer.
	db.SetMaxOpenConns(1)

	tx, err := db.Begin()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := tx.Exec(createNotesTablesSQL); err != nil {
		_ = tx.Rollback()
		_ = db.Close()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteNoteStore{db: db}, nil
}

func (s *SQLiteNoteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteNoteStore) Create(ctx context.Context, note types.Note) error {
	if err := validateNote(note); err != nil {
		return wrapError(RepositoryBackendSQLite, "create", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	note = normalizeNote(note)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (id, title, content, priority, created_on, updated_on) VALUES (?, ?, ?, ?, ?, ?)",
		note.ID, note.Title, note.Content, note.Priority.Ordinal(), note.CreatedOn.UnixMilli(), note.UpdatedOn.UnixMilli())
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique) {
		err = ErrNoteExists
	}
	return wrapError(RepositoryBackendSQLite, "create", err)
}

func (s *SQLiteNoteStore) GetByID(ctx context.Context, id string) (types.Note, bool, error) {
	row := s.db.QueryRowContext(ctx, selectNoteColumns+" WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Note{}, false, nil
	}
	if err != nil {
		return types.Note{}, false, wrapError(RepositoryBackendSQLite, "get", err)
	}
	return note, true, nil
}

func (s *SQLiteNoteStore) Update(ctx context.Context, note types.Note) error {
	if err := validateNote(note); err != nil {
		return wrapError(RepositoryBackendSQLite, "update", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	note = normalizeNote(note)
	result, err := s.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, priority = ?, created_on = ?, updated_on = ? WHERE id = ?",
		note.Title, note.Content, note.Priority.Ordinal(), note.CreatedOn.UnixMilli(), note.UpdatedOn.UnixMilli(), note.ID)
	if err != nil {
		return wrapError(RepositoryBackendSQLite, "update", err)
	}
	return wrapError(RepositoryBackendSQLite, "update", requireAffected(result))
}

func (s *SQLiteNoteStore) Delete(ctx context.Context, note types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", note.ID)
	if err != nil {
		return wrapError(RepositoryBackendSQLite, "delete", err)
	}
	return wrapError(RepositoryBackendSQLite, "delete", requireAffected(result))
}

func (s *SQLiteNoteStore) ListAllByRecency(ctx context.Context) ([]types.Note, error) {
	return s.query(ctx, selectNoteColumns+orderByRecency)
}

func (s *SQLiteNoteStore) ListAllByPriority(ctx context.Context) ([]types.Note, error) {
	return s.query(ctx, selectNoteColumns+orderByPriority)
}

func (s *SQLiteNoteStore) query(ctx context.Context, query string) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError(RepositoryBackendSQLite, "list", err)
	}
	defer rows.Close()

	notes := []types.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, wrapError(RepositoryBackendSQLite, "list", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(RepositoryBackendSQLite, "list", err)
	}
	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (types.Note, error) {
	var (
		note      types.Note
		ordinal   int
		createdOn int64
		updatedOn int64
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &ordinal, &createdOn, &updatedOn); err != nil {
		return types.Note{}, err
	}
	priority, err := types.PriorityFromOrdinal(ordinal)
	if err != nil {
		return types.Note{}, err
	}
	note.Priority = priority
	note.CreatedOn = types.FromUnixMilli(createdOn)
	note.UpdatedOn = types.FromUnixMilli(updatedOn)
	return note, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

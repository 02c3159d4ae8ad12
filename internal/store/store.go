package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"chartkit/internal/chart"
	"chartkit/internal/config"
)

// ErrNotFound is returned when a descriptor or payload does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrLocked is returned when another process holds the library lock.
var ErrLocked = errors.New("store: library locked by another process")

// Store manages library persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the library database, takes the library
// lock, and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.LibraryDir, "library.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.LibraryDir, "library.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the library lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Insert stores a descriptor with its serialized chart payload and returns
// the assigned ID. Payload may be nil for descriptor-only rows.
func (s *Store) Insert(ctx context.Context, d *chart.Descriptor, payload []byte) (int64, error) {
	if d == nil {
		return 0, errors.New("store: nil descriptor")
	}
	if strings.TrimSpace(d.Title) == "" {
		return 0, errors.New("store: descriptor title required")
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO charts (set_id, title, artist, creator, audio_file, format_version, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.SetID,
		d.Title,
		d.Artist,
		d.Creator,
		d.AudioFile,
		d.FormatVersion,
		payload,
	)
	if err != nil {
		return 0, fmt.Errorf("insert chart: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	d.ID = id
	return id, nil
}

// Descriptor fetches one descriptor by ID.
func (s *Store) Descriptor(ctx context.Context, id int64) (*chart.Descriptor, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, set_id, title, artist, creator, audio_file, format_version
		 FROM charts WHERE id = ?`,
		id,
	)
	return scanDescriptor(row)
}

// List returns all descriptors ordered by title, then ID.
func (s *Store) List(ctx context.Context) ([]*chart.Descriptor, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, set_id, title, artist, creator, audio_file, format_version
		 FROM charts ORDER BY title COLLATE NOCASE, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	defer rows.Close()

	var result []*chart.Descriptor
	for rows.Next() {
		d, err := scanDescriptor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charts: %w", err)
	}
	return result, nil
}

// ListBySet returns the descriptors sharing a set, ordered by ID.
func (s *Store) ListBySet(ctx context.Context, setID int64) ([]*chart.Descriptor, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, set_id, title, artist, creator, audio_file, format_version
		 FROM charts WHERE set_id = ? ORDER BY id`,
		setID,
	)
	if err != nil {
		return nil, fmt.Errorf("list set %d: %w", setID, err)
	}
	defer rows.Close()

	var result []*chart.Descriptor
	for rows.Next() {
		d, err := scanDescriptor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate set %d: %w", setID, err)
	}
	return result, nil
}

// Payload returns the serialized chart stored for id.
func (s *Store) Payload(ctx context.Context, id int64) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM charts WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read payload %d: %w", id, err)
	}
	if len(payload) == 0 {
		return nil, ErrNotFound
	}
	return payload, nil
}

// SetFormatVersion writes back the source format version discovered while
// loading chart id.
func (s *Store) SetFormatVersion(ctx context.Context, id int64, version int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE charts SET format_version = ? WHERE id = ?`, version, id)
	if err != nil {
		return fmt.Errorf("update format version %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a chart row.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chart %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDescriptor(row rowScanner) (*chart.Descriptor, error) {
	var d chart.Descriptor
	err := row.Scan(&d.ID, &d.SetID, &d.Title, &d.Artist, &d.Creator, &d.AudioFile, &d.FormatVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan descriptor: %w", err)
	}
	return &d, nil
}

package cookies

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

const (
	queryAll    = `SELECT name, encrypted_value FROM cookies`
	queryByHost = `SELECT name, encrypted_value FROM cookies WHERE host_key LIKE ?`
	queryOne    = `SELECT encrypted_value FROM cookies WHERE host_key LIKE ? AND name = ?`
)

// Store reads a private copy of a Chrome cookie database. Each query opens
// and closes its own connection; the Store only owns the copied files.
// The copy is opened read-write so SQLite replays the copied -wal, which
// holds the rows the browser has not checkpointed yet.
// Host patterns use SQL LIKE semantics: callers supply their own wildcards.
type Store struct {
	path    string
	cleanup func()
}

// Open copies the database at path aside and validates the copy. The
// original is only read as bytes, so a browser holding it in exclusive
// locking mode does not block Open. All errors are
// oscrypt.KindStoreAccessFailed.
func Open(path string) (*Store, error) {
	const op = "open cookie store"
	if err := detectFile(path); err != nil {
		return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op, err)
	}
	dbPath, cleanup, err := SafeCopy(afero.NewOsFs(), path)
	if err != nil {
		return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op, err)
	}
	s := &Store{path: dbPath, cleanup: cleanup}

	db, err := s.open()
	if err == nil {
		err = checkSchema(db, path)
		db.Close()
	}
	if err != nil {
		s.Close()
		return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op, err)
	}
	return s, nil
}

// Close removes the private copy. It is safe to call more than once.
func (s *Store) Close() error {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=rw", s.path))
	if err != nil {
		return nil, fmt.Errorf("error: cannot open Chrome cookie database: %w", err)
	}
	return db, nil
}

// QueryAll returns every cookie row.
func (s *Store) QueryAll(ctx context.Context) ([]Row, error) {
	return s.queryRows(ctx, "query all cookies", queryAll)
}

// QueryByHost returns the rows whose host_key matches hostPattern.
func (s *Store) QueryByHost(ctx context.Context, hostPattern string) ([]Row, error) {
	return s.queryRows(ctx, "query cookies by host", queryByHost, hostPattern)
}

// QueryOne returns the encrypted value of the first row matching hostPattern
// and name. found is false when no row matches.
func (s *Store) QueryOne(ctx context.Context, hostPattern, name string) (value []byte, found bool, err error) {
	const op = "query cookie"
	db, err := s.open()
	if err != nil {
		return nil, false, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op, err)
	}
	defer db.Close()

	err = db.QueryRowContext(ctx, queryOne, hostPattern, name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op,
			fmt.Errorf("error: failed to query Chrome cookie: %w", err))
	}
	return value, true, nil
}

func (s *Store) queryRows(ctx context.Context, op, query string, args ...any) ([]Row, error) {
	db, err := s.open()
	if err != nil {
		return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op,
			fmt.Errorf("error: failed to query Chrome cookies: %w", err))
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Name, &r.EncryptedValue); err != nil {
			return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op,
				fmt.Errorf("error: failed to scan Chrome cookie row: %w", err))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, oscrypt.NewError(oscrypt.KindStoreAccessFailed, op,
			fmt.Errorf("error: failed to iterate Chrome cookie rows: %w", err))
	}
	return out, nil
}

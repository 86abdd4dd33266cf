package cookies

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"
)

// sqliteMagic is the first 16 bytes of any SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// requiredColumns are the cookies columns the reader depends on.
var requiredColumns = []string{"host_key", "name", "encrypted_value"}

// DetectStore checks that path is a Chrome cookie database: an existing,
// non-empty SQLite file with a cookies table carrying host_key, name and
// encrypted_value. It opens path itself, so it fails with SQLITE_BUSY while
// a running browser holds the database; Open validates a copy instead.
func DetectStore(path string) error {
	if err := detectFile(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return fmt.Errorf("error: cannot open SQLite database: %w", err)
	}
	defer db.Close()
	return checkSchema(db, path)
}

// detectFile runs the checks that only read path's bytes and never take a
// SQLite lock.
func detectFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error: cookie database not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("error: %s is a directory, expected a cookie database path", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("error: cookie database at %s is empty or corrupted", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error: cannot open cookie database: %w", err)
	}
	header := make([]byte, len(sqliteMagic))
	_, err = io.ReadFull(f, header)
	f.Close()
	if err != nil || !bytes.Equal(header, sqliteMagic) {
		return fmt.Errorf("error: %s is not a SQLite database", path)
	}
	return nil
}

// checkSchema verifies the cookies table of db. path only names the
// database in errors.
func checkSchema(db *sql.DB, path string) error {
	rows, err := db.Query(`SELECT name FROM pragma_table_info('cookies')`)
	if err != nil {
		return fmt.Errorf("error: cannot read schema of %s: %w", path, err)
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return fmt.Errorf("error: cannot read schema of %s: %w", path, err)
		}
		have[col] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error: cannot read schema of %s: %w", path, err)
	}
	if len(have) == 0 {
		return fmt.Errorf("error: unsupported cookie database schema at %s: no cookies table", path)
	}
	for _, col := range requiredColumns {
		if !have[col] {
			return fmt.Errorf("error: unsupported cookie database schema at %s: missing column %s", path, col)
		}
	}
	return nil
}

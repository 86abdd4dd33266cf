package cookies

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// SafeCopy copies a SQLite cookie database (and its -wal and -shm companions
// if they exist) into a fresh temporary directory on fs, so reading it does
// not contend with the browser's lock.
//
// It returns the path of the copied database and a cleanup function that
// removes the temporary directory. The caller MUST call cleanup when done.
func SafeCopy(fs afero.Fs, srcPath string) (dbPath string, cleanup func(), err error) {
	info, err := fs.Stat(srcPath)
	if err != nil {
		return "", nil, fmt.Errorf("error: cookie database not found: %s", srcPath)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("error: %s is a directory, expected a cookie database path", srcPath)
	}
	if info.Size() == 0 {
		return "", nil, fmt.Errorf("error: cookie database at %s is empty or corrupted", srcPath)
	}

	tempDir, err := afero.TempDir(fs, "", "chromecookie-")
	if err != nil {
		return "", nil, fmt.Errorf("error: cannot create temp directory: %w", err)
	}
	cleanup = func() {
		_ = fs.RemoveAll(tempDir)
	}

	dbPath = filepath.Join(tempDir, filepath.Base(srcPath))
	if err := copyFile(fs, srcPath, dbPath); err != nil {
		cleanup()
		return "", nil, err
	}

	// Companions are best-effort: a missing WAL only means fewer rows.
	for _, suffix := range []string{"-wal", "-shm"} {
		companion := srcPath + suffix
		if _, err := fs.Stat(companion); err == nil {
			_ = copyFile(fs, companion, dbPath+suffix)
		}
	}

	return dbPath, cleanup, nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("error: cannot open source file %s: %w", src, err)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("error: cannot create destination file %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("error: cannot copy file: %w", err)
	}
	return nil
}

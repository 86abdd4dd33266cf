package cookies

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestSafeCopy_CopiesDatabase(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte("SQLite format 3\x00 some data here for testing")
	if err := afero.WriteFile(fs, "/profile/Network/Cookies", content, 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	dbPath, cleanup, err := SafeCopy(fs, "/profile/Network/Cookies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	if filepath.Base(dbPath) != "Cookies" {
		t.Errorf("expected copied file named Cookies, got %s", dbPath)
	}
	got, err := afero.ReadFile(fs, dbPath)
	if err != nil {
		t.Fatalf("failed to read copied file: %v", err)
	}
	if string(got) != string(content) {
		t.Error("copied file content does not match source")
	}
}

func TestSafeCopy_CopiesWALAndSHM(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "/profile/Cookies"
	for path, data := range map[string]string{src: "main db", src + "-wal": "wal data", src + "-shm": "shm data"} {
		if err := afero.WriteFile(fs, path, []byte(data), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	dbPath, cleanup, err := SafeCopy(fs, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	for suffix, want := range map[string]string{"-wal": "wal data", "-shm": "shm data"} {
		got, err := afero.ReadFile(fs, dbPath+suffix)
		if err != nil {
			t.Fatalf("failed to read copied %s: %v", suffix, err)
		}
		if string(got) != want {
			t.Errorf("copied %s content does not match source", suffix)
		}
	}
}

func TestSafeCopy_CleanupRemovesTempDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/Cookies", []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	dbPath, cleanup, err := SafeCopy(fs, "/p/Cookies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleanup()
	if ok, _ := afero.DirExists(fs, filepath.Dir(dbPath)); ok {
		t.Fatal("temp dir should be removed after cleanup")
	}
}

func TestSafeCopy_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/dir", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := afero.WriteFile(fs, "/empty", nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cases := map[string]string{
		"/missing": "not found",
		"/dir":     "is a directory",
		"/empty":   "empty or corrupted",
	}
	for path, want := range cases {
		_, _, err := SafeCopy(fs, path)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%s: expected error containing %q, got %v", path, want, err)
		}
	}
}

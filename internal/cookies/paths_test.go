package cookies

import (
	"os"
	"path/filepath"
	"testing"
)

func mkCookies(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLocationsForHome_Linux(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".config", "google-chrome")
	mkCookies(t, filepath.Join(root, "Profile 2", "Cookies"))
	mkCookies(t, filepath.Join(root, "Default", "Network", "Cookies"))
	mkCookies(t, filepath.Join(root, "Default", "Cookies"))
	mkCookies(t, filepath.Join(root, "Profile 1", "Network", "Cookies"))
	if err := os.MkdirAll(filepath.Join(root, "System Profile"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	locs := locationsForHome("linux", home)
	if len(locs) != 3 {
		t.Fatalf("expected 3 locations, got %d: %+v", len(locs), locs)
	}
	want := []Location{
		{"Default", filepath.Join(root, "Default", "Network", "Cookies"), filepath.Join(root, "Local State")},
		{"Profile 1", filepath.Join(root, "Profile 1", "Network", "Cookies"), filepath.Join(root, "Local State")},
		{"Profile 2", filepath.Join(root, "Profile 2", "Cookies"), filepath.Join(root, "Local State")},
	}
	for i := range want {
		if locs[i] != want[i] {
			t.Errorf("location %d: want %+v, got %+v", i, want[i], locs[i])
		}
	}
}

func TestLocationsForHome_Darwin(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "Cookies")
	mkCookies(t, path)

	locs := locationsForHome("darwin", home)
	if len(locs) != 1 || locs[0].CookiesPath != path {
		t.Fatalf("unexpected locations %+v", locs)
	}
}

func TestLocationsForHome_Unsupported(t *testing.T) {
	if locs := locationsForHome("windows", t.TempDir()); locs != nil {
		t.Fatalf("expected no locations, got %+v", locs)
	}
}

func TestLocationsForHome_NoChrome(t *testing.T) {
	if locs := locationsForHome("linux", t.TempDir()); len(locs) != 0 {
		t.Fatalf("expected no locations, got %+v", locs)
	}
}

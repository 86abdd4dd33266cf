package keysource

import (
	"os"
	"path/filepath"
	"runtime"
)

var userHomeDir = os.UserHomeDir

// LocalStatePathForHome returns Chrome's Local State location under homeDir
// for goos, or "" when goos has no known location.
func LocalStatePathForHome(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Google", "Chrome", "Local State")
	case "linux":
		return filepath.Join(homeDir, ".config", "google-chrome", "Local State")
	}
	return ""
}

// DefaultLocalStatePath returns the Local State location for the current
// user, or "" if the home directory cannot be resolved.
func DefaultLocalStatePath() string {
	homeDir, err := userHomeDir()
	if err != nil {
		return ""
	}
	return LocalStatePathForHome(runtime.GOOS, homeDir)
}

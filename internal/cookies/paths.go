package cookies

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// chromeUserDataDir returns Chrome's user data directory under homeDir for
// goos, or "" when goos has no known layout.
func chromeUserDataDir(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Google", "Chrome")
	case "linux":
		return filepath.Join(homeDir, ".config", "google-chrome")
	}
	return ""
}

// locationsForHome lists the Chrome profiles found under homeDir. The
// Default profile comes first, then "Profile N" directories in name order.
// Within a profile, Network/Cookies (Chrome 96+) wins over the legacy path.
// This is the testable variant; Locations calls it with the real home.
func locationsForHome(goos, homeDir string) []Location {
	root := chromeUserDataDir(goos, homeDir)
	if root == "" {
		return nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var profiles []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if name := e.Name(); name == "Default" || strings.HasPrefix(name, "Profile ") {
			profiles = append(profiles, name)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i] == "Default" {
			return profiles[j] != "Default"
		}
		if profiles[j] == "Default" {
			return false
		}
		return profiles[i] < profiles[j]
	})

	localState := filepath.Join(root, "Local State")
	var locs []Location
	for _, p := range profiles {
		for _, candidate := range []string{
			filepath.Join(root, p, "Network", "Cookies"),
			filepath.Join(root, p, "Cookies"),
		} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			locs = append(locs, Location{Profile: p, CookiesPath: candidate, LocalStatePath: localState})
			break
		}
	}
	return locs
}

// Locations returns the Chrome profiles of the current user that have a
// cookie database.
func Locations() []Location {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return locationsForHome(runtime.GOOS, homeDir)
}

// DefaultCookiesPath returns the cookie database of the Default profile, or
// "" if none exists.
func DefaultCookiesPath() string {
	for _, l := range Locations() {
		if l.Profile == "Default" {
			return l.CookiesPath
		}
	}
	return ""
}

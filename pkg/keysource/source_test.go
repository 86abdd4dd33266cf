package keysource

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

type slowSource struct {
	delay time.Duration
}

func (s slowSource) Name() string { return "slow" }

func (s slowSource) Secret(context.Context) ([]byte, error) {
	time.Sleep(s.delay)
	return []byte("late"), nil
}

func TestWithTimeout_Expires(t *testing.T) {
	src := WithTimeout(slowSource{delay: 200 * time.Millisecond}, 10*time.Millisecond)
	_, err := src.Secret(context.Background())
	if !errors.Is(err, oscrypt.ErrSecretRetrievalFailed) {
		t.Fatalf("expected ErrSecretRetrievalFailed, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestWithTimeout_Completes(t *testing.T) {
	src := WithTimeout(NewStatic("peanuts"), time.Second)
	got, err := src.Secret(context.Background())
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if string(got) != "peanuts" {
		t.Fatalf("unexpected secret %q", got)
	}
	if src.Name() != "static" {
		t.Fatalf("expected wrapped name, got %q", src.Name())
	}
}

func TestWithTimeout_ZeroIsPassthrough(t *testing.T) {
	s := NewStatic("x")
	if WithTimeout(s, 0) != Source(s) {
		t.Fatal("expected source returned unchanged")
	}
}

func TestUnsupported(t *testing.T) {
	_, err := Unsupported{GOOS: "plan9"}.Secret(context.Background())
	if !errors.Is(err, oscrypt.ErrPlatformUnsupported) {
		t.Fatalf("expected ErrPlatformUnsupported, got %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	cases := map[string]string{
		BackendKeychain:   "keychain",
		BackendKeyring:    "keyring",
		BackendLocalState: "local-state",
		BackendBasic:      "static",
	}
	for name, want := range cases {
		src, err := ParseBackend(name, Options{LocalStatePath: "/tmp/Local State"})
		if err != nil {
			t.Fatalf("ParseBackend(%q): %v", name, err)
		}
		if src.Name() != want {
			t.Errorf("ParseBackend(%q).Name() = %q, want %q", name, src.Name(), want)
		}
	}

	src, err := ParseBackend(BackendBasic, Options{})
	if err != nil {
		t.Fatalf("ParseBackend(basic): %v", err)
	}
	secret, _ := src.Secret(context.Background())
	if string(secret) != BasicPassword {
		t.Fatalf("basic backend must yield %q", BasicPassword)
	}

	if _, err := ParseBackend(BackendFile, Options{}); err == nil {
		t.Fatal("expected error for file backend without path")
	}
	if _, err := ParseBackend("gnome-libsecret", Options{}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := ParseBackend(BackendDefault, Options{}); err != nil {
		t.Fatalf("default backend: %v", err)
	}
}

func TestLocalStatePathForHome(t *testing.T) {
	home := "/home/u"
	if got := LocalStatePathForHome("linux", home); got != filepath.Join(home, ".config", "google-chrome", "Local State") {
		t.Errorf("linux: %q", got)
	}
	if got := LocalStatePathForHome("darwin", home); got != filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Local State") {
		t.Errorf("darwin: %q", got)
	}
	if got := LocalStatePathForHome("windows", home); got != "" {
		t.Errorf("windows: expected empty, got %q", got)
	}
}

func TestDefaultLocalStatePath_NoHome(t *testing.T) {
	orig := userHomeDir
	defer func() { userHomeDir = orig }()
	userHomeDir = func() (string, error) { return "", errors.New("no home") }
	if got := DefaultLocalStatePath(); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestYieldsPassword(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want bool
	}{
		{"static", NewStatic("peanuts"), true},
		{"file", NewFile("/tmp/secret"), true},
		{"local state", NewLocalState("/tmp/Local State"), false},
		{"local state with timeout", WithTimeout(NewLocalState("/tmp/Local State"), time.Second), false},
		{"static with timeout", WithTimeout(NewStatic("peanuts"), time.Second), true},
		{"nested timeout", WithTimeout(WithTimeout(NewLocalState("/tmp/Local State"), time.Second), time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YieldsPassword(tt.src); got != tt.want {
				t.Errorf("YieldsPassword = %v, want %v", got, tt.want)
			}
		})
	}
}

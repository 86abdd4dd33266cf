// Package keysource retrieves the raw secret Chrome's cookie keys are derived
// from. Each strategy implements Source; the platform default is chosen by
// Default and can be overridden by name with ParseBackend.
//
// Secrets returned by a Source are never logged or persisted.
package keysource

import (
	"context"
	"fmt"
	"time"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// DefaultTimeout bounds a secret lookup. Keychain prompts can block
// indefinitely waiting for the user.
const DefaultTimeout = 5 * time.Second

// Source yields the master secret used for key derivation.
type Source interface {
	// Secret returns the raw secret. Errors are *oscrypt.Error values.
	Secret(ctx context.Context) ([]byte, error)
	// Name identifies the strategy in logs and CLI output.
	Name() string
}

// PasswordReporter is implemented by sources that can say whether their
// Secret is a master password. LocalState yields a wrapped key blob instead.
type PasswordReporter interface {
	PasswordSource() bool
}

// YieldsPassword reports whether src's Secret is a master password.
// Sources that do not implement PasswordReporter are assumed to yield one.
func YieldsPassword(src Source) bool {
	if p, ok := src.(PasswordReporter); ok {
		return p.PasswordSource()
	}
	return true
}

// Static is a fixed secret. Chrome uses "peanuts" on Linux when no keyring
// is available and "mock_password" for the macOS mock keychain.
type Static struct {
	Value string
}

const (
	// BasicPassword is the Linux fallback password used without a keyring.
	BasicPassword = "peanuts"
	// MockKeychainPassword is the password of Chrome's macOS mock keychain.
	MockKeychainPassword = "mock_password"
)

// NewStatic returns a Source that always yields value.
func NewStatic(value string) *Static {
	return &Static{Value: value}
}

func (s *Static) Secret(context.Context) ([]byte, error) {
	return []byte(s.Value), nil
}

func (s *Static) Name() string { return "static" }

// Unsupported fails every lookup without touching the filesystem or
// spawning processes.
type Unsupported struct {
	GOOS string
}

func (u Unsupported) Secret(context.Context) ([]byte, error) {
	return nil, oscrypt.Errorf(oscrypt.KindPlatformUnsupported, "secret", "no key source for %s", u.GOOS)
}

func (u Unsupported) Name() string { return "unsupported" }

type timeoutSource struct {
	src Source
	d   time.Duration
}

// WithTimeout bounds every Secret call on src to d. A non-positive d
// returns src unchanged.
func WithTimeout(src Source, d time.Duration) Source {
	if d <= 0 {
		return src
	}
	return &timeoutSource{src: src, d: d}
}

func (t *timeoutSource) Name() string { return t.src.Name() }

func (t *timeoutSource) PasswordSource() bool { return YieldsPassword(t.src) }

func (t *timeoutSource) Secret(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()

	type result struct {
		secret []byte
		err    error
	}
	// Buffered so a lookup that ignores ctx does not leak the goroutine
	// once it eventually returns.
	ch := make(chan result, 1)
	go func() {
		s, err := t.src.Secret(ctx)
		ch <- result{s, err}
	}()

	select {
	case r := <-ch:
		return r.secret, r.err
	case <-ctx.Done():
		return nil, oscrypt.NewError(oscrypt.KindSecretRetrievalFailed, t.src.Name(),
			fmt.Errorf("timed out after %s: %w", t.d, ctx.Err()))
	}
}

// Backend names accepted by ParseBackend.
const (
	BackendDefault    = ""
	BackendKeychain   = "keychain"
	BackendKeyring    = "keyring"
	BackendLocalState = "local-state"
	BackendBasic      = "basic"
	BackendFile       = "file"
)

// Options carries the parameters a backend may need.
type Options struct {
	// LocalStatePath overrides the Local State location.
	LocalStatePath string
	// SecretFile is the path read by the file backend.
	SecretFile string
}

// ParseBackend builds the Source registered under name.
func ParseBackend(name string, opts Options) (Source, error) {
	switch name {
	case BackendDefault:
		if opts.LocalStatePath != "" {
			if _, ok := Default().(*LocalState); ok {
				return NewLocalState(opts.LocalStatePath), nil
			}
		}
		return Default(), nil
	case BackendKeychain:
		return NewKeychain(), nil
	case BackendKeyring:
		return NewKeyring(), nil
	case BackendLocalState:
		path := opts.LocalStatePath
		if path == "" {
			path = DefaultLocalStatePath()
		}
		return NewLocalState(path), nil
	case BackendBasic:
		return NewStatic(BasicPassword), nil
	case BackendFile:
		if opts.SecretFile == "" {
			return nil, fmt.Errorf("file backend requires a secret file path")
		}
		return NewFile(opts.SecretFile), nil
	}
	return nil, fmt.Errorf("unknown key backend %q", name)
}

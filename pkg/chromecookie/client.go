// Package chromecookie reads and decrypts cookies from Chrome's on-disk
// cookie database.
//
// A Client ties together a keysource.Source for the master password, the
// derivation and decryption primitives of package oscrypt and the cookie
// database reader. Batch reads never abort on a single bad row: such rows
// come back as their raw bytes with CookieRecord.Raw set.
package chromecookie

import (
	"context"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/warpdl/chromecookie/internal/cookies"
	"github.com/warpdl/chromecookie/pkg/keysource"
	"github.com/warpdl/chromecookie/pkg/logger"
	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// CookieRecord is one decrypted cookie.
type CookieRecord struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	// Raw is set when Value is the lossy-decoded stored blob rather than
	// a decrypted plaintext.
	Raw bool `json:"raw,omitempty"`
}

// Client is safe for concurrent use. It holds no secrets between calls.
type Client struct {
	source  keysource.Source
	scheme  oscrypt.Scheme
	log     logger.Logger
	workers int
	timeout time.Duration
	fs      afero.Fs
}

// New returns a Client configured for the current platform.
func New(opts ...Option) *Client {
	scheme, _ := DefaultScheme()
	c := &Client{
		source:  keysource.Default(),
		scheme:  scheme,
		log:     logger.NewNopLogger(),
		timeout: keysource.DefaultTimeout,
		fs:      afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers <= 0 {
		c.workers = runtime.NumCPU()
	}
	return c
}

// DefaultScheme returns the cookie derivation scheme Chrome uses on the
// current OS: the 1003-iteration legacy scheme on macOS, the single
// iteration portable scheme on Linux.
func DefaultScheme() (oscrypt.Scheme, error) {
	return schemeFor(runtime.GOOS)
}

func schemeFor(goos string) (oscrypt.Scheme, error) {
	switch goos {
	case "darwin":
		return oscrypt.SchemeLegacyCBC, nil
	case "linux":
		return oscrypt.SchemePortableCBC, nil
	}
	return 0, oscrypt.Errorf(oscrypt.KindPlatformUnsupported, "scheme", "no cookie scheme for %s", goos)
}

// Scheme returns the cookie derivation scheme in use.
func (c *Client) Scheme() oscrypt.Scheme { return c.scheme }

// Source returns the configured master password source.
func (c *Client) Source() keysource.Source { return c.source }

// passwordSource returns the source of the master password. The Local
// State source yields the wrapped key blob, not a password; Chrome pairs
// it with the basic password store when no keyring is in use.
func (c *Client) passwordSource() keysource.Source {
	if !keysource.YieldsPassword(c.source) {
		c.log.Info("key source %s has no password, using the basic password store", c.source.Name())
		return keysource.NewStatic(keysource.BasicPassword)
	}
	return c.source
}

// MasterPassword fetches Chrome's master password from the configured
// source, bounded by the client timeout.
func (c *Client) MasterPassword(ctx context.Context) (string, error) {
	src := c.passwordSource()
	secret, err := keysource.WithTimeout(src, c.timeout).Secret(ctx)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(secret) {
		return "", oscrypt.Errorf(oscrypt.KindEncodingFailed, "master password", "%s returned a non UTF-8 secret", src.Name())
	}
	c.log.Info("fetched master password from %s", src.Name())
	return string(secret), nil
}

// MasterKey unwraps the 16-byte master key stored in the Local State file
// at localStatePath, using the master password as the wrapping secret.
// An empty localStatePath means the current user's default location.
func (c *Client) MasterKey(ctx context.Context, localStatePath string) ([oscrypt.MasterKeySize]byte, error) {
	var zero [oscrypt.MasterKeySize]byte
	password, err := c.MasterPassword(ctx)
	if err != nil {
		return zero, err
	}
	if localStatePath == "" {
		localStatePath = keysource.DefaultLocalStatePath()
	}
	ls := &keysource.LocalState{Path: localStatePath, Fs: c.fs}
	blob, err := ls.Secret(ctx)
	if err != nil {
		return zero, err
	}
	return oscrypt.UnwrapMasterKey(blob, oscrypt.DeriveKey([]byte(password), oscrypt.SchemeWrappedKey))
}

// DecryptCookie decrypts a single stored envelope. ok is false when the
// envelope is not encrypted in a recognized format or decrypts to an empty
// value.
func DecryptCookie(envelope []byte, password string, scheme oscrypt.Scheme) (value string, ok bool, err error) {
	return oscrypt.Decrypt(oscrypt.Classify(envelope), oscrypt.DeriveKey([]byte(password), scheme))
}

func (c *Client) cookieKey(password string) (oscrypt.Key, error) {
	switch c.scheme {
	case oscrypt.SchemeLegacyCBC, oscrypt.SchemePortableCBC:
		return oscrypt.DeriveKey([]byte(password), c.scheme), nil
	case 0:
		return oscrypt.Key{}, oscrypt.Errorf(oscrypt.KindPlatformUnsupported, "cookie key", "no cookie scheme for %s", runtime.GOOS)
	}
	return oscrypt.Key{}, oscrypt.Errorf(oscrypt.KindCiphertextDecodeFailed, "cookie key", "scheme %s does not encrypt cookies", c.scheme)
}

// CookieValue returns the decrypted value of the first cookie named name
// whose host_key matches host. host is a SQL LIKE pattern.
// ok is false when no such cookie exists or it has no decryptable value.
func (c *Client) CookieValue(ctx context.Context, storePath, password, host, name string) (value string, ok bool, err error) {
	key, err := c.cookieKey(password)
	if err != nil {
		return "", false, err
	}
	store, err := cookies.Open(storePath)
	if err != nil {
		return "", false, err
	}
	defer store.Close()

	blob, found, err := store.QueryOne(ctx, host, name)
	if err != nil || !found {
		return "", false, err
	}
	return oscrypt.Decrypt(oscrypt.Classify(blob), key)
}

// CookiesForHost returns every cookie whose host_key matches the SQL LIKE
// pattern host, in database order.
func (c *Client) CookiesForHost(ctx context.Context, storePath, password, host string) ([]CookieRecord, error) {
	return c.batch(ctx, storePath, password, func(s *cookies.Store) ([]cookies.Row, error) {
		return s.QueryByHost(ctx, host)
	})
}

// Cookies returns every cookie in the store, in database order.
func (c *Client) Cookies(ctx context.Context, storePath, password string) ([]CookieRecord, error) {
	return c.batch(ctx, storePath, password, func(s *cookies.Store) ([]cookies.Row, error) {
		return s.QueryAll(ctx)
	})
}

func (c *Client) batch(ctx context.Context, storePath, password string, query func(*cookies.Store) ([]cookies.Row, error)) ([]CookieRecord, error) {
	key, err := c.cookieKey(password)
	if err != nil {
		return nil, err
	}
	store, err := cookies.Open(storePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rows, err := query(store)
	if err != nil {
		return nil, err
	}
	return c.decryptRows(ctx, rows, key)
}

// decryptRows decrypts rows in parallel. Output order equals input order.
// Only cancellation of ctx fails the batch.
func (c *Client) decryptRows(ctx context.Context, rows []cookies.Row, key oscrypt.Key) ([]CookieRecord, error) {
	out := make([]CookieRecord, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = c.decryptRow(row, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := 0
	for _, r := range out {
		if r.Raw {
			raw++
		}
	}
	c.log.Info("decrypted %d cookies (%d raw)", len(out), raw)
	return out, nil
}

func (c *Client) decryptRow(row cookies.Row, key oscrypt.Key) CookieRecord {
	fallback := CookieRecord{Name: row.Name, Value: oscrypt.Lossy(row.EncryptedValue), Raw: true}
	if len(row.EncryptedValue) <= 3 {
		return fallback
	}
	value, ok, err := oscrypt.Decrypt(oscrypt.Classify(row.EncryptedValue), key)
	if err != nil {
		c.log.Warning("cookie %q: %v, using raw value", row.Name, err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return CookieRecord{Name: row.Name, Value: value}
}

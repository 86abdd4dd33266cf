package chromecookie

import (
	"time"

	"github.com/spf13/afero"

	"github.com/warpdl/chromecookie/pkg/keysource"
	"github.com/warpdl/chromecookie/pkg/logger"
	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// Option configures a Client.
type Option func(*Client)

// WithSource sets where the master password comes from.
// The default is keysource.Default().
func WithSource(src keysource.Source) Option {
	return func(c *Client) {
		if src != nil {
			c.source = src
		}
	}
}

// WithScheme overrides the cookie derivation scheme picked by DefaultScheme.
func WithScheme(s oscrypt.Scheme) Option {
	return func(c *Client) {
		c.scheme = s
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithWorkers bounds the number of rows decrypted in parallel.
// n <= 0 means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *Client) {
		c.workers = n
	}
}

// WithTimeout bounds every master secret lookup. d <= 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithFs sets the filesystem Local State is read from.
func WithFs(fs afero.Fs) Option {
	return func(c *Client) {
		if fs != nil {
			c.fs = fs
		}
	}
}

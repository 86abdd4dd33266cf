package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/warpdl/chromecookie/common"
	"github.com/warpdl/chromecookie/pkg/chromecookie"
	"github.com/warpdl/chromecookie/pkg/keysource"
	"github.com/warpdl/chromecookie/pkg/logger"
	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	backend        string
	password       string
	localStatePath string
	secretFile     string
	schemeName     string
	lookupTimeout  time.Duration
	workers        int
	debug          bool
	logFile        string

	keyFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "backend, b",
			Usage:       "key backend: keychain, keyring, local-state, basic or file (default: platform)",
			EnvVar:      common.BackendEnv,
			Destination: &backend,
		},
		cli.StringFlag{
			Name:        "password, p",
			Usage:       "use this master password instead of asking the key backend",
			EnvVar:      common.PasswordEnv,
			Destination: &password,
		},
		cli.StringFlag{
			Name:        "local-state",
			Usage:       "path of Chrome's Local State file (default: current user's)",
			Destination: &localStatePath,
		},
		cli.StringFlag{
			Name:        "secret-file",
			Usage:       "file holding the master password, for the file backend",
			Destination: &secretFile,
		},
		cli.StringFlag{
			Name:        "scheme",
			Usage:       "cookie scheme: legacy (macOS) or portable (Linux) (default: platform)",
			Destination: &schemeName,
		},
		cli.DurationFlag{
			Name:        "timeout",
			Usage:       "bound on the key backend lookup",
			Value:       keysource.DefaultTimeout,
			EnvVar:      common.TimeoutEnv,
			Destination: &lookupTimeout,
		},
		cli.IntFlag{
			Name:        "workers, w",
			Usage:       "number of cookies decrypted in parallel (default: number of CPUs)",
			EnvVar:      common.WorkersEnv,
			Destination: &workers,
		},
		cli.BoolFlag{
			Name:        "debug, d",
			Usage:       "log diagnostics to stderr",
			EnvVar:      common.DebugEnv,
			Destination: &debug,
		},
		cli.StringFlag{
			Name:        "log-file",
			Usage:       "append diagnostics to this file",
			Destination: &logFile,
		},
	}
)

func newLogger() (logger.Logger, error) {
	var loggers []logger.Logger
	if debug {
		loggers = append(loggers, logger.NewStandardLogger(log.New(stderr, "chromecookie: ", 0)))
	}
	if logFile != "" {
		fl, err := logger.NewFileLogger(logFile)
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, fl)
	}
	switch len(loggers) {
	case 0:
		return logger.NewNopLogger(), nil
	case 1:
		return loggers[0], nil
	}
	return logger.NewMultiLogger(loggers...), nil
}

// newClient builds a client from the key flags. The caller must Close the
// returned logger.
func newClient() (*chromecookie.Client, logger.Logger, error) {
	src, err := keysource.ParseBackend(backend, keysource.Options{
		LocalStatePath: localStatePath,
		SecretFile:     secretFile,
	})
	if err != nil {
		return nil, nil, err
	}
	opts := []chromecookie.Option{
		chromecookie.WithSource(src),
		chromecookie.WithWorkers(workers),
		chromecookie.WithTimeout(lookupTimeout),
	}
	if schemeName != "" {
		s, err := oscrypt.ParseScheme(schemeName)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, chromecookie.WithScheme(s))
	}
	l, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, chromecookie.WithLogger(l))
	l.Info("key backend %s", src.Name())
	return chromecookie.New(opts...), l, nil
}

// scheme returns the --scheme flag, or the platform scheme.
func scheme() (oscrypt.Scheme, error) {
	if schemeName != "" {
		return oscrypt.ParseScheme(schemeName)
	}
	return chromecookie.DefaultScheme()
}

func withFlags(flags ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, f := range flags {
		out = append(out, f...)
	}
	return out
}

func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() < n {
		return fmt.Errorf("expected %d argument(s), got %d", n, ctx.NArg())
	}
	return nil
}

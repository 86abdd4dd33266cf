package cmd

import (
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/warpdl/chromecookie/common"
	"github.com/warpdl/chromecookie/internal/rpc"
)

var (
	httpAddr string
	rpcToken string

	serveFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "http",
			Usage:       "listen on this address instead of stdio (e.g. 127.0.0.1:9797)",
			Destination: &httpAddr,
		},
		cli.StringFlag{
			Name:        "token",
			Usage:       "bearer token required in --http mode",
			EnvVar:      common.RPCTokenEnv,
			Destination: &rpcToken,
		},
	}
)

var (
	stdin       io.Reader      = os.Stdin
	stdoutClose io.WriteCloser = os.Stdout
)

var errNoToken = errors.New("--http requires --token")

func serve(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if httpAddr != "" && rpcToken == "" {
		return errNoToken
	}
	c, l, err := newClient()
	if err != nil {
		return err
	}
	defer l.Close()

	srv := rpc.NewServer(&rpc.Config{
		Client:    c,
		Log:       l,
		Version:   currentBuild.Version,
		Commit:    currentBuild.Commit,
		BuildType: currentBuild.BuildType,
	})
	if httpAddr == "" {
		return srv.ServeStdio(stdin, stdoutClose)
	}

	h, closeBridge := srv.HTTPHandler(rpcToken)
	defer closeBridge()
	l.Info("serving JSON-RPC on http://%s", httpAddr)
	hs := &http.Server{
		Addr:              httpAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return hs.ListenAndServe()
}

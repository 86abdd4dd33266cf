package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/warpdl/chromecookie/pkg/keysource"
)

var (
	saveTo string

	passwordFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "save-to",
			Usage:       "store the password in this 0600 file instead of printing it, for use with -b file",
			Destination: &saveTo,
		},
	}
)

func key(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	c, l, err := newClient()
	if err != nil {
		return err
	}
	defer l.Close()
	k, err := c.MasterKey(context.Background(), localStatePath)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hex.EncodeToString(k[:]))
	return nil
}

func masterPasswordCmd(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	c, l, err := newClient()
	if err != nil {
		return err
	}
	defer l.Close()
	pw, err := c.MasterPassword(context.Background())
	if err != nil {
		return err
	}
	if saveTo != "" {
		if err := keysource.NewFile(saveTo).Store([]byte(pw)); err != nil {
			return err
		}
		l.Info("stored master password from %s in %s", c.Source().Name(), saveTo)
		return nil
	}
	fmt.Fprintln(stdout, pw)
	return nil
}

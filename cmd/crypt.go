package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	cmdcommon "github.com/warpdl/chromecookie/cmd/common"
	"github.com/warpdl/chromecookie/pkg/chromecookie"
	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

var (
	prefixV11 bool
	randomIV  bool

	encryptFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "v11",
			Usage:       "tag the envelope v11 instead of v10",
			Destination: &prefixV11,
		},
		cli.BoolFlag{
			Name:        "random-iv",
			Usage:       "encrypt under a random IV and print it (not readable by Chrome)",
			Destination: &randomIV,
		},
	}
)

func decrypt(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if err := requireArgs(ctx, 1); err != nil {
		return cmdcommon.PrintErrWithCmdHelp(ctx, err)
	}
	envelope, err := base64.StdEncoding.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("value must be base64: %w", err)
	}
	s, err := scheme()
	if err != nil {
		return err
	}
	pw, err := passwordFromFlags()
	if err != nil {
		return err
	}
	value, ok, err := chromecookie.DecryptCookie(envelope, pw, s)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(stdout, value)
	}
	return nil
}

func encrypt(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if err := requireArgs(ctx, 1); err != nil {
		return cmdcommon.PrintErrWithCmdHelp(ctx, err)
	}
	s, err := scheme()
	if err != nil {
		return err
	}
	pw, err := passwordFromFlags()
	if err != nil {
		return err
	}
	iv := oscrypt.IV
	if randomIV {
		if iv, err = oscrypt.GenerateIV(); err != nil {
			return err
		}
	}
	prefix := "v10"
	if prefixV11 {
		prefix = "v11"
	}
	key := oscrypt.DeriveKey([]byte(pw), s)
	envelope := append([]byte(prefix), oscrypt.EncryptCBC(key, iv, []byte(ctx.Args().First()))...)
	fmt.Fprintln(stdout, base64.StdEncoding.EncodeToString(envelope))
	if randomIV {
		fmt.Fprintf(stderr, "iv: %s\n", hex.EncodeToString(iv[:]))
	}
	return nil
}

// passwordFromFlags returns --password or asks the key backend.
func passwordFromFlags() (string, error) {
	if password != "" {
		return password, nil
	}
	c, l, err := newClient()
	if err != nil {
		return "", err
	}
	defer l.Close()
	return masterPassword(c)
}

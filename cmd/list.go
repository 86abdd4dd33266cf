package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	cmdcommon "github.com/warpdl/chromecookie/cmd/common"
	"github.com/warpdl/chromecookie/common"
	"github.com/warpdl/chromecookie/internal/cookies"
	"github.com/warpdl/chromecookie/pkg/chromecookie"
)

var (
	dbPath string
	format string

	storeFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "db",
			Usage:       "path of the Cookies database (default: Default profile)",
			Destination: &dbPath,
		},
		cli.StringFlag{
			Name:        "format, f",
			Usage:       "output format: table, json or header",
			Value:       common.FormatTable,
			Destination: &format,
		},
	}
)

var errNoCookieDB = errors.New("no Chrome cookie database found, use --db")

// defaultCookiesPath is replaced in tests.
var defaultCookiesPath = cookies.DefaultCookiesPath

func cookieDB() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if p := defaultCookiesPath(); p != "" {
		return p, nil
	}
	return "", errNoCookieDB
}

func masterPassword(c *chromecookie.Client) (string, error) {
	if password != "" {
		return password, nil
	}
	return c.MasterPassword(context.Background())
}

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	return printBatch(func(c *chromecookie.Client, db, pw string) ([]chromecookie.CookieRecord, error) {
		return c.Cookies(context.Background(), db, pw)
	})
}

func host(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if err := requireArgs(ctx, 1); err != nil {
		return cmdcommon.PrintErrWithCmdHelp(ctx, err)
	}
	pattern := ctx.Args().First()
	return printBatch(func(c *chromecookie.Client, db, pw string) ([]chromecookie.CookieRecord, error) {
		return c.CookiesForHost(context.Background(), db, pw, pattern)
	})
}

func printBatch(fetch func(c *chromecookie.Client, db, pw string) ([]chromecookie.CookieRecord, error)) error {
	db, err := cookieDB()
	if err != nil {
		return err
	}
	c, l, err := newClient()
	if err != nil {
		return err
	}
	defer l.Close()
	pw, err := masterPassword(c)
	if err != nil {
		return err
	}
	records, err := fetch(c, db, pw)
	if err != nil {
		return err
	}
	return printRecords(records, format)
}

func printRecords(records []chromecookie.CookieRecord, f string) error {
	switch f {
	case common.FormatJSON:
		if records == nil {
			records = []chromecookie.CookieRecord{}
		}
		b, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(b))
	case common.FormatHeader:
		fmt.Fprintln(stdout, chromecookie.BuildCookieHeader(records))
	case common.FormatTable, "":
		if len(records) == 0 {
			fmt.Fprintln(stdout, "chromecookie: no cookies found")
			return nil
		}
		fmt.Fprintln(stdout, recordTable(records))
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	return nil
}

var tableWidths = [...]int{3, 24, 43, 5}

func recordTable(records []chromecookie.CookieRecord) string {
	var sb strings.Builder
	row := func(cols ...string) {
		sb.WriteString("\n|")
		for i, c := range cols {
			sb.WriteString(cmdcommon.Beaut(c, tableWidths[i]))
			sb.WriteString("|")
		}
	}
	total := 1
	for _, w := range tableWidths {
		total += w + 1
	}
	line := strings.Repeat("-", total)

	sb.WriteString(line)
	row("Num", "Name", "Value", "Raw")
	sb.WriteString("\n|")
	for _, w := range tableWidths {
		sb.WriteString(strings.Repeat("-", w) + "|")
	}
	for i, r := range records {
		raw := ""
		if r.Raw {
			raw = "*"
		}
		row(fmt.Sprint(i+1), r.Name, printable(r.Value), raw)
	}
	sb.WriteString("\n" + line)
	return sb.String()
}

// printable replaces control characters so raw values cannot break the
// table layout.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '.'
		}
		return r
	}, s)
}

func get(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if err := requireArgs(ctx, 2); err != nil {
		return cmdcommon.PrintErrWithCmdHelp(ctx, err)
	}
	db, err := cookieDB()
	if err != nil {
		return err
	}
	c, l, err := newClient()
	if err != nil {
		return err
	}
	defer l.Close()
	pw, err := masterPassword(c)
	if err != nil {
		return err
	}
	value, ok, err := c.CookieValue(context.Background(), db, pw, ctx.Args().Get(0), ctx.Args().Get(1))
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(stdout, value)
	}
	return nil
}

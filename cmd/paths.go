package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/warpdl/chromecookie/internal/cookies"
)

// locations is replaced in tests.
var locations = cookies.Locations

func paths(ctx *cli.Context) error {
	locs := locations()
	if len(locs) == 0 {
		fmt.Fprintln(stdout, "chromecookie: no Chrome profiles found")
		return nil
	}
	for _, l := range locs {
		fmt.Fprintf(stdout, "%s\n  cookies:     %s\n  local state: %s\n", l.Profile, l.CookiesPath, l.LocalStatePath)
	}
	return nil
}

package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/warpdl/chromecookie/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var currentBuild BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuild = bArgs
	app := cli.App{
		Name:                  "chromecookie",
		HelpName:              "chromecookie",
		Usage:                 "Decrypts Google Chrome cookies.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "chromecookie <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Writer:                stdout,
		ErrWriter:             stderr,
		Commands: []cli.Command{
			{
				Name:               "list",
				Aliases:            []string{"l"},
				Usage:              "print all cookies",
				Action:             list,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ListDescription,
				Flags:              withFlags(storeFlags, keyFlags),
			},
			{
				Name:               "host",
				Usage:              "print the cookies of a host",
				UsageText:          "<host-pattern>",
				Action:             host,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        HostDescription,
				Flags:              withFlags(storeFlags, keyFlags),
			},
			{
				Name:               "get",
				Usage:              "print a single cookie value",
				UsageText:          "<host-pattern> <name>",
				Action:             get,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        GetDescription,
				Flags:              withFlags(storeFlags, keyFlags),
			},
			{
				Name:               "decrypt",
				Usage:              "decrypt a base64 encoded cookie value",
				UsageText:          "<base64-value>",
				Action:             decrypt,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        DecryptDescription,
				Flags:              keyFlags,
			},
			{
				Name:               "encrypt",
				Usage:              "encrypt a cookie value the way Chrome stores it",
				UsageText:          "<plaintext>",
				Action:             encrypt,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        EncryptDescription,
				Flags:              withFlags(encryptFlags, keyFlags),
			},
			{
				Name:               "key",
				Usage:              "print the master key of Local State",
				Action:             key,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        KeyDescription,
				Flags:              keyFlags,
			},
			{
				Name:               "password",
				Usage:              "print the master password",
				Action:             masterPasswordCmd,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        PasswordDescription,
				Flags:              withFlags(passwordFlags, keyFlags),
			},
			{
				Name:               "serve",
				Usage:              "serve JSON-RPC for editor plugins",
				Action:             serve,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ServeDescription,
				Flags:              withFlags(serveFlags, keyFlags),
			},
			{
				Name:               "paths",
				Usage:              "list Chrome profiles and their cookie databases",
				UsageText:          " ",
				Action:             paths,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        PathsDescription,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of chromecookie",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      common.Help,
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}

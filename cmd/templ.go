package cmd

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}{{if .VisibleFlags}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`

const DESCRIPTION = `
chromecookie reads the cookie database of Google Chrome and decrypts the
stored values with the key material of the current user.
`

const (
	ListDescription = `The list command prints every cookie of a Chrome
cookie database. Values that cannot be decrypted are printed
raw and marked in the Raw column.

Example:
        chromecookie list
        chromecookie list --db ~/.config/google-chrome/Default/Cookies -f json

`
	HostDescription = `The host command prints the cookies whose host matches
a SQL LIKE pattern. Use % as wildcard.

Example:
        chromecookie host %github.com
        chromecookie host -f header .example.com

`
	GetDescription = `The get command prints the decrypted value of a single
cookie. Nothing is printed when the cookie does not exist.

Example:
        chromecookie get .github.com user_session

`
	DecryptDescription = `The decrypt command decrypts one base64 encoded
encrypted_value, as stored in the cookies table.

Example:
        chromecookie decrypt -p peanuts --scheme portable djEw...

`
	EncryptDescription = `The encrypt command produces the base64 encoded
encrypted_value Chrome would store for a plaintext.

Example:
        chromecookie encrypt -p peanuts --scheme portable "test chrome cookie v10"

`
	KeyDescription = `The key command unwraps the master key kept in Chrome's
Local State file and prints it hex encoded.

Example:
        chromecookie key --local-state ~/.config/google-chrome/"Local State"

`
	PasswordDescription = `The password command prints the master password
returned by the selected key backend. With --save-to it is
stored in a private file that "-b file --secret-file" reads.

Example:
        chromecookie password -b keyring
        chromecookie password -b keychain --save-to ~/.config/chromecookie/secret

`
	ServeDescription = `The serve command serves JSON-RPC 2.0 requests, one per
line on stdin, writing responses to stdout. With --http it
listens on the given address instead and requires a bearer
token.

Example:
        chromecookie serve
        chromecookie serve --http 127.0.0.1:9797 --token s3cret

`
	PathsDescription = `The paths command lists the Chrome profiles of the
current user that have a cookie database.

Example:
        chromecookie paths

`
)

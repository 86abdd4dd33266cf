package common

// JSON-RPC method names served by `chromecookie serve`.
const (
	MethodCookieDecrypt  = "cookie.decrypt"
	MethodCookieGet      = "cookie.get"
	MethodCookieListHost = "cookie.listHost"
	MethodCookieList     = "cookie.list"
	MethodKeyMaster      = "key.master"
	MethodKeyPassword    = "key.password"
	MethodSystemVersion  = "system.getVersion"
)

// Output formats of the list commands.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatHeader = "header"
)

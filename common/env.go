// Package common provides constants and wire types shared by the
// chromecookie CLI and its JSON-RPC server.
package common

// Environment variable names for configuration.
const (
	// PasswordEnv supplies the master password directly, skipping the
	// key source lookup.
	PasswordEnv = "CHROMECOOKIE_PASSWORD"

	// BackendEnv selects the key source backend by name.
	BackendEnv = "CHROMECOOKIE_BACKEND"

	// TimeoutEnv bounds master secret lookups (e.g. "5s").
	TimeoutEnv = "CHROMECOOKIE_TIMEOUT"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "CHROMECOOKIE_DEBUG"

	// WorkersEnv bounds parallel decryption in batch reads.
	WorkersEnv = "CHROMECOOKIE_WORKERS"

	// RPCTokenEnv is the bearer token required by `serve --http`.
	RPCTokenEnv = "CHROMECOOKIE_RPC_TOKEN"
)

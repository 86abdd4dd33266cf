package common

import "github.com/warpdl/chromecookie/pkg/chromecookie"

// Password is optional in every request: when empty the server asks its
// key source.

type DecryptParams struct {
	// Value is the base64-encoded stored envelope.
	Value    string `json:"value"`
	Password string `json:"password,omitempty"`
	Scheme   string `json:"scheme,omitempty"`
}

type DecryptResponse struct {
	Value string `json:"value,omitempty"`
	Found bool   `json:"found"`
}

type GetParams struct {
	Path     string `json:"path"`
	Password string `json:"password,omitempty"`
	Host     string `json:"host"`
	Name     string `json:"name"`
}

type GetResponse struct {
	Value string `json:"value,omitempty"`
	Found bool   `json:"found"`
}

type ListParams struct {
	Path     string `json:"path"`
	Password string `json:"password,omitempty"`
	// Host is a SQL LIKE pattern; only used by cookie.listHost.
	Host string `json:"host,omitempty"`
}

type ListResponse struct {
	Cookies []chromecookie.CookieRecord `json:"cookies"`
	Header  string                      `json:"header"`
}

type MasterKeyParams struct {
	LocalStatePath string `json:"local_state_path,omitempty"`
}

type MasterKeyResponse struct {
	// Key is hex encoded.
	Key string `json:"key"`
}

type PasswordResponse struct {
	Password string `json:"password"`
	Source   string `json:"source"`
}

type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}

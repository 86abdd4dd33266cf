package cookies

// Row is one cookie row as stored by Chrome.
// EncryptedValue is SENSITIVE: never log or format it into errors.
type Row struct {
	// Name is the cookie name.
	Name string
	// EncryptedValue is the stored envelope, prefix included.
	EncryptedValue []byte
}

// Location describes where a Chrome profile keeps its cookie database and
// its Local State file.
type Location struct {
	// Profile is the profile directory name, e.g. "Default".
	Profile string
	// CookiesPath is the cookie database path.
	CookiesPath string
	// LocalStatePath is the Local State file shared by all profiles.
	LocalStatePath string
}

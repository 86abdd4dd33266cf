// Package cookies reads Chrome's cookie database for the decryption pipeline.
// It supports only Chrome's cookies SQLite schema and yields raw
// (name, encrypted_value) rows; decryption happens in pkg/chromecookie.
//
// The database is copied out of the browser profile before it is opened, and
// every query opens and closes its own read-only connection. Cookie values
// are never logged; only names and hosts may appear in debug output.
package cookies

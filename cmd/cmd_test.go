package cmd

import (
	"bytes"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	cmdcommon "github.com/warpdl/chromecookie/cmd/common"
	"github.com/warpdl/chromecookie/internal/cookies"
	"github.com/warpdl/chromecookie/pkg/chromecookie"
	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

func seal(plaintext string) []byte {
	key := oscrypt.DeriveKey([]byte("peanuts"), oscrypt.SchemePortableCBC)
	return append([]byte("v10"), oscrypt.EncryptCBC(key, oscrypt.IV, []byte(plaintext))...)
}

func createCookieDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cookies")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE cookies (host_key TEXT NOT NULL, name TEXT NOT NULL, encrypted_value BLOB NOT NULL)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	for _, r := range []struct {
		host, name string
		value      []byte
	}{
		{".example.com", "sid", seal("abc123")},
		{".example.com", "short", []byte("ab")},
		{"other.org", "lang", seal("en")},
	} {
		if _, err := db.Exec(`INSERT INTO cookies VALUES (?, ?, ?)`, r.host, r.name, r.value); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	oldOut, oldCommon := stdout, cmdcommon.Stdout
	stdout, cmdcommon.Stdout = buf, buf
	t.Cleanup(func() { stdout, cmdcommon.Stdout = oldOut, oldCommon })

	err := Execute(append([]string{"chromecookie"}, args...), BuildArgs{
		Version:   "1.0.0",
		BuildType: "test",
		Date:      "2026-01-01",
		Commit:    "deadbeef",
	})
	return buf.String(), err
}

var keyArgs = []string{"-p", "peanuts", "--scheme", "portable"}

func TestList_JSON(t *testing.T) {
	db := createCookieDB(t)
	out, err := run(t, append([]string{"list", "--db", db, "-f", "json"}, keyArgs...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var records []chromecookie.CookieRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("unmarshal: %v (out: %s)", err, out)
	}
	want := []chromecookie.CookieRecord{
		{Name: "sid", Value: "abc123"},
		{Name: "short", Value: "ab", Raw: true},
		{Name: "lang", Value: "en"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %+v", len(want), records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d: want %+v, got %+v", i, want[i], records[i])
		}
	}
}

func TestList_Table(t *testing.T) {
	db := createCookieDB(t)
	out, err := run(t, append([]string{"list", "--db", db}, keyArgs...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range []string{"sid", "abc123", "lang", "*"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected %q in table, got:\n%s", s, out)
		}
	}
}

func TestHost_Header(t *testing.T) {
	db := createCookieDB(t)
	out, err := run(t, append([]string{"host", "--db", db, "-f", "header", "%example.com"}, keyArgs...)...)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	if strings.TrimSpace(out) != "sid=abc123; short=ab" {
		t.Fatalf("unexpected header %q", out)
	}
}

func TestGet(t *testing.T) {
	db := createCookieDB(t)
	out, err := run(t, append([]string{"get", "--db", db, ".example.com", "sid"}, keyArgs...)...)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(out) != "abc123" {
		t.Fatalf("unexpected value %q", out)
	}

	out, err = run(t, append([]string{"get", "--db", db, ".example.com", "missing"}, keyArgs...)...)
	if err != nil || out != "" {
		t.Fatalf("expected no output for missing cookie, got %q, %v", out, err)
	}
}

func TestList_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "Cookies")
	_, err := run(t, append([]string{"list", "--db", missing}, keyArgs...)...)
	if !errors.Is(err, oscrypt.ErrStoreAccessFailed) {
		t.Errorf("expected ErrStoreAccessFailed, got %v", err)
	}

	db := createCookieDB(t)
	_, err = run(t, append([]string{"list", "--db", db, "-f", "xml"}, keyArgs...)...)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}

	_, err = run(t, "list", "--db", db, "-p", "peanuts", "--scheme", "rot13")
	if err == nil {
		t.Error("expected error for unknown scheme")
	}

	_, err = run(t, "list", "--db", db, "-b", "carrier-pigeon")
	if err == nil || !strings.Contains(err.Error(), "unknown key backend") {
		t.Errorf("expected unknown backend error, got %v", err)
	}
}

func TestList_NoDefaultDB(t *testing.T) {
	old := defaultCookiesPath
	defaultCookiesPath = func() string { return "" }
	defer func() { defaultCookiesPath = old }()

	if _, err := run(t, append([]string{"list"}, keyArgs...)...); !errors.Is(err, errNoCookieDB) {
		t.Fatalf("expected errNoCookieDB, got %v", err)
	}
}

func TestEncryptDecrypt(t *testing.T) {
	out, err := run(t, append([]string{"encrypt", "test chrome cookie v10"}, keyArgs...)...)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	enc := strings.TrimSpace(out)
	if enc != base64.StdEncoding.EncodeToString(seal("test chrome cookie v10")) {
		t.Fatalf("unexpected envelope %s", enc)
	}

	out, err = run(t, append([]string{"decrypt", enc}, keyArgs...)...)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if strings.TrimSpace(out) != "test chrome cookie v10" {
		t.Fatalf("unexpected plaintext %q", out)
	}

	out, err = run(t, append([]string{"encrypt", "--v11", "x"}, keyArgs...)...)
	if err != nil {
		t.Fatalf("encrypt --v11: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out))
	if err != nil || !bytes.HasPrefix(raw, []byte("v11")) {
		t.Fatalf("expected v11 envelope, got %q, %v", raw, err)
	}
}

func TestDecrypt_Errors(t *testing.T) {
	if _, err := run(t, append([]string{"decrypt", "%%%"}, keyArgs...)...); err == nil {
		t.Error("expected base64 error")
	}
	bad := base64.StdEncoding.EncodeToString([]byte("v10short"))
	if _, err := run(t, append([]string{"decrypt", bad}, keyArgs...)...); !errors.Is(err, oscrypt.ErrCiphertextDecodeFailed) {
		t.Errorf("expected ErrCiphertextDecodeFailed, got %v", err)
	}
}

func TestPassword(t *testing.T) {
	out, err := run(t, "password", "-b", "basic")
	if err != nil {
		t.Fatalf("password: %v", err)
	}
	if strings.TrimSpace(out) != "peanuts" {
		t.Fatalf("unexpected password %q", out)
	}
}

func TestPassword_SaveTo(t *testing.T) {
	secret := filepath.Join(t.TempDir(), "secret")
	out, err := run(t, "password", "-b", "basic", "--save-to", secret)
	if err != nil {
		t.Fatalf("password --save-to: %v", err)
	}
	if out != "" {
		t.Fatalf("password must not be printed when saved, got %q", out)
	}

	out, err = run(t, "password", "-b", "file", "--secret-file", secret)
	if err != nil {
		t.Fatalf("password -b file: %v", err)
	}
	if strings.TrimSpace(out) != "peanuts" {
		t.Fatalf("unexpected password %q", out)
	}
}

func TestKey(t *testing.T) {
	master := []byte("0123456789abcdef")
	blob, err := oscrypt.WrapMasterKey(master, oscrypt.DeriveKey([]byte("peanuts"), oscrypt.SchemeWrappedKey), []byte("nonce-123456"))
	if err != nil {
		t.Fatalf("WrapMasterKey: %v", err)
	}
	ls := filepath.Join(t.TempDir(), "Local State")
	doc := fmt.Sprintf(`{"os_crypt":{"encrypted_key":%q}}`, base64.StdEncoding.EncodeToString(blob))
	if err := os.WriteFile(ls, []byte(doc), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := run(t, "key", "-b", "basic", "--local-state", ls)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if strings.TrimSpace(out) != "30313233343536373839616263646566" {
		t.Fatalf("unexpected key %q", out)
	}
}

func TestServe_HTTPRequiresToken(t *testing.T) {
	t.Setenv("CHROMECOOKIE_RPC_TOKEN", "")
	if _, err := run(t, "serve", "--http", "127.0.0.1:0"); !errors.Is(err, errNoToken) {
		t.Fatalf("expected errNoToken, got %v", err)
	}
}

func TestServe_Stdio(t *testing.T) {
	oldIn, oldOut := stdin, stdoutClose
	defer func() { stdin, stdoutClose = oldIn, oldOut }()
	stdin = strings.NewReader("")
	out := &nopCloser{}
	stdoutClose = out

	if _, err := run(t, "serve", "-b", "basic"); err != nil {
		t.Fatalf("serve: %v", err)
	}
}

type nopCloser struct{ bytes.Buffer }

func (n *nopCloser) Close() error { return nil }

func TestPaths(t *testing.T) {
	old := locations
	defer func() { locations = old }()

	locations = func() []cookies.Location { return nil }
	out, err := run(t, "paths")
	if err != nil || !strings.Contains(out, "no Chrome profiles") {
		t.Fatalf("unexpected output %q, %v", out, err)
	}

	locations = func() []cookies.Location {
		return []cookies.Location{{Profile: "Default", CookiesPath: "/c/Default/Cookies", LocalStatePath: "/c/Local State"}}
	}
	out, err = run(t, "paths")
	if err != nil || !strings.Contains(out, "/c/Default/Cookies") || !strings.Contains(out, "/c/Local State") {
		t.Fatalf("unexpected output %q, %v", out, err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "chromecookie 1.0.0-test") || !strings.Contains(out, "deadbeef") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestPrintable(t *testing.T) {
	if got := printable("a\x00b\nc\x7f"); got != "a.b.c." {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRecordTable(t *testing.T) {
	table := recordTable([]chromecookie.CookieRecord{
		{Name: "a-very-long-cookie-name-that-overflows", Value: "v"},
	})
	lines := strings.Split(table, "\n")
	width := len(lines[0])
	for _, l := range lines {
		if len([]rune(l)) != width {
			t.Errorf("ragged table line %q (want width %d)", l, width)
		}
	}
}

package oscrypt

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDeriveKey_PortableKnownAnswers(t *testing.T) {
	cases := []struct {
		password string
		answer   string
	}{
		{"peanuts", "fd621fe5a2b402539dfa147ca9272778"},
		{"", "d0d0ec9c7d77d43ac54187fa4818d17f"},
		{"zxqfb", "b756307474b00da355f773f02f861ae4"},
	}
	for _, c := range cases {
		got := hex.EncodeToString(DeriveKey([]byte(c.password), SchemePortableCBC).Bytes())
		if got != c.answer {
			t.Errorf("password %q: expected %s, got %s", c.password, c.answer, got)
		}
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	for _, scheme := range []Scheme{SchemeLegacyCBC, SchemeWrappedKey, SchemePortableCBC} {
		a := DeriveKey([]byte("mock_password"), scheme)
		b := DeriveKey([]byte("mock_password"), scheme)
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("%s: derived keys differ across calls", scheme)
		}
		if len(a.Bytes()) != KeySize {
			t.Errorf("%s: expected %d-byte key, got %d", scheme, KeySize, len(a.Bytes()))
		}
	}
}

func TestDeriveKey_IterationsDiffer(t *testing.T) {
	legacy := DeriveKey([]byte("peanuts"), SchemeLegacyCBC)
	portable := DeriveKey([]byte("peanuts"), SchemePortableCBC)
	if bytes.Equal(legacy.Bytes(), portable.Bytes()) {
		t.Fatal("1003-iteration and 1-iteration keys must differ")
	}
	wrapped := DeriveKey([]byte("peanuts"), SchemeWrappedKey)
	if !bytes.Equal(legacy.Bytes(), wrapped.Bytes()) {
		t.Fatal("legacy and wrapped schemes share parameters and must yield the same bytes")
	}
	if legacy.Scheme() == wrapped.Scheme() {
		t.Fatal("keys must remember the scheme they were derived for")
	}
}

func TestKeyString_HidesMaterial(t *testing.T) {
	k := DeriveKey([]byte("peanuts"), SchemePortableCBC)
	if s := k.String(); bytes.Contains([]byte(s), []byte("fd621f")) {
		t.Fatalf("key String leaked material: %s", s)
	}
}

func TestParseScheme(t *testing.T) {
	cases := map[string]Scheme{
		"legacy":   SchemeLegacyCBC,
		"darwin":   SchemeLegacyCBC,
		"portable": SchemePortableCBC,
		"linux":    SchemePortableCBC,
		"wrapped":  SchemeWrappedKey,
	}
	for in, want := range cases {
		got, err := ParseScheme(in)
		if err != nil {
			t.Fatalf("ParseScheme(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseScheme(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseScheme("v20"); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}

package seal

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

var testKey = strings.Repeat("ab", KeySize)

func TestSealOpen(t *testing.T) {
	s, err := New(testKey)
	if err != nil {
		t.Fatal(err)
	}

	for range 100 {
		plain := gofakeit.LetterN(uint(gofakeit.IntRange(1, 128)))

		sealed, err := s.Seal([]byte(plain))
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(sealed, plain) {
			t.Fatal("plain text visible in sealed box")
		}

		opened, err := s.Open(sealed)
		if err != nil {
			t.Fatal(err)
		}
		if string(opened) != plain {
			t.Fatalf("%q != %q", opened, plain)
		}
	}
}

func TestOpenInvalid(t *testing.T) {
	s, _ := New(testKey)
	other, _ := New(strings.Repeat("cd", KeySize))

	sealed, err := s.Seal([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		sealer *Sealer
		box    string
	}{
		{other, sealed},
		{s, "not base64 !!"},
		{s, "AAAA"},
	}
	for _, tt := range tests {
		if _, err := tt.sealer.Open(tt.box); !errors.Is(err, ErrOpen) {
			t.Fatalf("%q: expected ErrOpen, got %v", tt.box, err)
		}
	}
}

func TestNewInvalidKey(t *testing.T) {
	for _, key := range []string{"", "zz", strings.Repeat("ab", 16)} {
		if _, err := New(key); err == nil {
			t.Fatalf("%q: expected error", key)
		}
	}
}

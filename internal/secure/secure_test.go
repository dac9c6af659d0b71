package secure

import (
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	p, err := Encrypt("app-secret", "card-ref-5526")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if p.Content == "" || p.IV == "" || p.Tag == "" {
		t.Fatalf("payload has empty field: %+v", p)
	}

	got, err := Decrypt("app-secret", p)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != "card-ref-5526" {
		t.Fatalf("plaintext = %q", got)
	}
}

func TestDecryptWrongSecret(t *testing.T) {
	p, err := Encrypt("app-secret", "card-ref-5526")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := Decrypt("other-secret", p); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("err = %v, want ErrDecrypt", err)
	}
}

func TestDecryptTamperedTag(t *testing.T) {
	p, err := Encrypt("app-secret", "card-ref-5526")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	p.Tag = p.Tag[:len(p.Tag)-2] + "00"
	if _, err := Decrypt("app-secret", p); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("err = %v, want ErrDecrypt", err)
	}
}

func TestEncryptUniqueNonce(t *testing.T) {
	a, _ := Encrypt("app-secret", "same")
	b, _ := Encrypt("app-secret", "same")
	if a.IV == b.IV {
		t.Fatal("nonce reused across Encrypt calls")
	}
}

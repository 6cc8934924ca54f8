package notify

import (
	"encoding/base64"
	"testing"
)

func TestGenerateVAPIDKeys(t *testing.T) {
	publicKey, privateKey, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate vapid keys: %v", err)
	}
	if publicKey == "" || privateKey == "" {
		t.Fatal("expected non-empty key pair")
	}

	pub, err := base64.RawURLEncoding.DecodeString(publicKey)
	if err != nil {
		t.Fatalf("public key is not base64url: %v", err)
	}
	// Uncompressed P-256 point: 0x04 prefix plus two 32-byte coordinates.
	if len(pub) != 65 || pub[0] != 0x04 {
		t.Fatalf("public key length %d prefix %#x, want 65-byte uncompressed point", len(pub), pub[0])
	}
	if _, err := base64.RawURLEncoding.DecodeString(privateKey); err != nil {
		t.Fatalf("private key is not base64url: %v", err)
	}

	other, _, err := GenerateVAPIDKeys()
	if err != nil {
		t.Fatalf("generate second pair: %v", err)
	}
	if other == publicKey {
		t.Fatal("expected distinct key pairs")
	}
}

package model

import (
	"testing"

	"github.com/fernet/fernet-go"
)

func TestValueCipher_RoundTrip(t *testing.T) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	cipher, err := NewValueCipher(key.Encode())
	if err != nil {
		t.Fatalf("NewValueCipher returned error: %v", err)
	}
	if !cipher.Enabled() {
		t.Fatal("Expected cipher to be enabled")
	}

	token, err := cipher.EncryptAmount(12345.67)
	if err != nil {
		t.Fatalf("EncryptAmount returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}

	amount, err := cipher.DecryptAmount(token)
	if err != nil {
		t.Fatalf("DecryptAmount returned error: %v", err)
	}
	if amount != 12345.67 {
		t.Errorf("Expected 12345.67, got %v", amount)
	}
}

func TestValueCipher_Disabled(t *testing.T) {
	cipher, err := NewValueCipher("")
	if err != nil {
		t.Fatalf("NewValueCipher returned error: %v", err)
	}
	if cipher.Enabled() {
		t.Error("Expected cipher to be disabled")
	}

	token, err := cipher.EncryptAmount(100)
	if err != nil {
		t.Fatalf("EncryptAmount returned error: %v", err)
	}
	if token != "" {
		t.Errorf("Expected empty token when disabled, got %q", token)
	}

	if _, err := cipher.DecryptAmount("anything"); err == nil {
		t.Error("Expected error decrypting without a key")
	}
}

func TestValueCipher_InvalidKey(t *testing.T) {
	if _, err := NewValueCipher("not-a-key"); err == nil {
		t.Error("Expected error for malformed key")
	}
}

package model

import (
	"fmt"
	"strconv"

	"github.com/fernet/fernet-go"
)

// ValueCipher encrypts sensitive monetary amounts (cost basis, current
// value) into fernet tokens for at-rest storage. With a key configured the
// plain columns stay NULL and amounts round-trip through the token columns;
// rows written before encryption was enabled remain readable.
type ValueCipher struct {
	key *fernet.Key
}

// NewValueCipher parses a base64 fernet key. An empty key disables
// encryption; EncryptAmount then returns an empty token.
func NewValueCipher(encoded string) (*ValueCipher, error) {
	if encoded == "" {
		return &ValueCipher{}, nil
	}
	key, err := fernet.DecodeKey(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}
	return &ValueCipher{key: key}, nil
}

// Enabled reports whether a key is configured.
func (c *ValueCipher) Enabled() bool { return c.key != nil }

// EncryptAmount returns the fernet token for an amount, or "" when
// encryption is disabled.
func (c *ValueCipher) EncryptAmount(amount float64) (string, error) {
	if c.key == nil {
		return "", nil
	}
	tok, err := fernet.EncryptAndSign([]byte(strconv.FormatFloat(amount, 'f', -1, 64)), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt amount: %w", err)
	}
	return string(tok), nil
}

// DecryptAmount verifies and decodes a token produced by EncryptAmount.
func (c *ValueCipher) DecryptAmount(token string) (float64, error) {
	if c.key == nil {
		return 0, fmt.Errorf("encryption key not configured")
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if msg == nil {
		return 0, fmt.Errorf("failed to verify encrypted amount")
	}
	amount, err := strconv.ParseFloat(string(msg), 64)
	if err != nil {
		return 0, fmt.Errorf("encrypted amount is not numeric: %w", err)
	}
	return amount, nil
}

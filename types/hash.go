package types

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// CryptoHash is a 32-byte sha256 digest identifying transactions,
// receipts and blocks. Its text form is base58.
type CryptoHash [32]byte

// HashBytes returns the sha256 digest of data.
func HashBytes(data []byte) CryptoHash {
	return CryptoHash(sha256.Sum256(data))
}

// ParseCryptoHash decodes a base58 hash.
func ParseCryptoHash(s string) (CryptoHash, error) {
	var h CryptoHash
	raw, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("crypto hash %q: %w", s, err)
	}
	if len(raw) != len(h) {
		return h, fmt.Errorf("crypto hash %q: expected %d bytes, got %d", s, len(h), len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

func (h CryptoHash) String() string {
	return base58.Encode(h[:])
}

// IsZero returns true if every byte of the hash is zero.
func (h CryptoHash) IsZero() bool {
	return h == CryptoHash{}
}

func (h CryptoHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *CryptoHash) UnmarshalText(text []byte) error {
	parsed, err := ParseCryptoHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	verrors "github.com/vellum-app/vellum/internal/errors"
)

const (
	// KeyLen is the raw AES-128 key length in bytes.
	KeyLen = 16

	// IVLen is the AES-GCM nonce length in bytes.
	IVLen = 12

	// SecretLen is the length of an exported secret: KeyLen bytes
	// base64url-encoded without padding is always 22 characters.
	SecretLen = 22
)

// Key is a symmetric AEAD key. It is generated fresh for every export and
// never reused across two different scenes.
type Key struct {
	raw []byte
}

// GenerateKey produces a fresh random AES-128 key.
func GenerateKey() (*Key, error) {
	raw := make([]byte, KeyLen)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrKeyGeneration, err)
	}
	return &Key{raw: raw}, nil
}

// ExportSecret returns the compact URL-safe textual encoding of the key.
// The algorithm and key length are protocol constants, so the raw bytes are
// the only attribute needed to reconstruct the key later.
func (k *Key) ExportSecret() string {
	return base64.RawURLEncoding.EncodeToString(k.raw)
}

// ImportSecret reconstructs a key from its textual encoding.
func ImportSecret(secret string) (*Key, error) {
	if len(secret) != SecretLen {
		return nil, fmt.Errorf("%w: secret must be %d characters, got %d",
			verrors.ErrInvalidKeyFormat, SecretLen, len(secret))
	}
	raw, err := base64.RawURLEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrInvalidKeyFormat, err)
	}
	if len(raw) != KeyLen {
		return nil, fmt.Errorf("%w: decoded key must be %d bytes, got %d",
			verrors.ErrInvalidKeyFormat, KeyLen, len(raw))
	}
	return &Key{raw: raw}, nil
}

// ImportSecretBytes builds a key directly from raw key material, for keys
// produced by derivation rather than decoding a textual secret.
func ImportSecretBytes(raw []byte) (*Key, error) {
	if len(raw) != KeyLen {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d",
			verrors.ErrInvalidKeyFormat, KeyLen, len(raw))
	}
	return &Key{raw: raw}, nil
}

// Bytes returns the raw key material. Callers must not mutate the result.
func (k *Key) Bytes() []byte {
	return k.raw
}

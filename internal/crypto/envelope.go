package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	verrors "github.com/vellum-app/vellum/internal/errors"
)

// Envelope holds the result of one encryption operation: a fresh random IV
// and the authenticated ciphertext.
type Envelope struct {
	IV         []byte
	Ciphertext []byte
}

func gcm(key *Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.raw)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt performs authenticated encryption of plaintext under key with a
// fresh random IV. No IV is ever reused with the same key.
func Encrypt(key *Key, plaintext []byte) (*Envelope, error) {
	aead, err := gcm(key)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, IVLen)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrKeyGeneration, err)
	}
	return &Envelope{
		IV:         iv,
		Ciphertext: aead.Seal(nil, iv, plaintext, nil),
	}, nil
}

// Frame serializes the envelope into a single transportable buffer,
// iv || ciphertext. The IV length is a protocol constant, not wire data.
func (e *Envelope) Frame() []byte {
	buf := make([]byte, len(e.IV)+len(e.Ciphertext))
	copy(buf, e.IV)
	copy(buf[len(e.IV):], e.Ciphertext)
	return buf
}

// DecryptFramed recovers the plaintext from a framed buffer. Recovery is a
// two-stage attempt:
//
//  1. Split the buffer as iv || ciphertext and decrypt.
//  2. If that fails authentication, treat the entire buffer as ciphertext
//     under an all-zero IV. This reads payloads written before the explicit
//     IV prefix was introduced; new writers never produce this form.
//
// The wire format carries no version tag. Stage 1 failing reliably on legacy
// buffers depends on GCM authentication; a non-authenticated mode would make
// the fallback ambiguous.
func DecryptFramed(key *Key, buf []byte) ([]byte, error) {
	aead, err := gcm(key)
	if err != nil {
		return nil, err
	}

	if len(buf) > IVLen {
		if pt, err := aead.Open(nil, buf[:IVLen], buf[IVLen:], nil); err == nil {
			return pt, nil
		}
	}

	zeroIV := make([]byte, IVLen)
	if pt, err := aead.Open(nil, zeroIV, buf, nil); err == nil {
		return pt, nil
	}

	return nil, verrors.ErrDecryptionFailed
}

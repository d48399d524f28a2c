package fileupload

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/scene"
)

// DefaultMaxBytes is the per-file plaintext ceiling when the caller does not
// configure one.
const DefaultMaxBytes = 3 << 20

// EncodedFile is one sealed file ready for upload: the framed envelope plus
// the metadata that rides alongside it.
type EncodedFile struct {
	ID       scene.FileID
	MimeType string
	Sealed   []byte
	Size     int64
}

// SkippedFile reports a file that was left out of an upload. The caller
// decides whether a skipped file fails the whole export.
type SkippedFile struct {
	ID   scene.FileID
	Size int64
	Err  error
}

// fileHeader is the cleartext-shaped metadata sealed together with the
// payload, so downloads can reconstruct the BinaryFile without a side channel.
type fileHeader struct {
	MimeType string `json:"mimeType"`
	Created  int64  `json:"created"`
	Size     int64  `json:"size"`
}

// fileKey derives the per-file subkey from the scene key. Domain separation
// keeps scene and file ciphertexts under distinct keys while the link still
// carries a single secret.
func fileKey(sceneKey *crypto.Key, id scene.FileID) (*crypto.Key, error) {
	h := hkdf.New(sha256.New, sceneKey.Bytes(), nil, []byte("vellum:file:"+string(id)))
	raw := make([]byte, crypto.KeyLen)
	if _, err := io.ReadFull(h, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrKeyGeneration, err)
	}
	return crypto.ImportSecretBytes(raw)
}

// EncodeForUpload seals each file independently under a subkey of the scene
// secret, with a fresh IV per file. Payloads are gzip-compressed before
// encryption. Files whose plaintext exceeds maxBytes are skipped, never
// truncated, and reported so one oversized file does not block the rest.
func EncodeForUpload(files map[scene.FileID]scene.BinaryFile, secret string, maxBytes int64) (map[scene.FileID]EncodedFile, []SkippedFile, error) {
	sceneKey, err := crypto.ImportSecret(secret)
	if err != nil {
		return nil, nil, err
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	encoded := make(map[scene.FileID]EncodedFile, len(files))
	var skipped []SkippedFile

	for id, file := range files {
		size := int64(len(file.Data))
		if size > maxBytes {
			skipped = append(skipped, SkippedFile{
				ID:   id,
				Size: size,
				Err:  fmt.Errorf("%w: %d bytes (limit %d)", verrors.ErrFileTooLarge, size, maxBytes),
			})
			continue
		}

		sealed, err := sealFile(sceneKey, id, file)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding file %s: %w", id, err)
		}
		encoded[id] = EncodedFile{
			ID:       id,
			MimeType: file.MimeType,
			Sealed:   sealed,
			Size:     size,
		}
	}

	return encoded, skipped, nil
}

func sealFile(sceneKey *crypto.Key, id scene.FileID, file scene.BinaryFile) ([]byte, error) {
	key, err := fileKey(sceneKey, id)
	if err != nil {
		return nil, err
	}

	header, err := json.Marshal(fileHeader{
		MimeType: file.MimeType,
		Created:  file.Created,
		Size:     int64(len(file.Data)),
	})
	if err != nil {
		return nil, err
	}

	// Plaintext layout: header line, then the gzip-compressed payload.
	var buf bytes.Buffer
	buf.Write(header)
	buf.WriteByte('\n')
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(file.Data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	env, err := crypto.Encrypt(key, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return env.Frame(), nil
}

// DecodeDownloaded reverses EncodeForUpload for one fetched blob: derive the
// file subkey, open the envelope (current framing first, legacy second),
// split off the header and decompress the payload.
func DecodeDownloaded(sealed []byte, secret string, id scene.FileID) (*scene.BinaryFile, error) {
	sceneKey, err := crypto.ImportSecret(secret)
	if err != nil {
		return nil, err
	}
	key, err := fileKey(sceneKey, id)
	if err != nil {
		return nil, err
	}

	plain, err := crypto.DecryptFramed(key, sealed)
	if err != nil {
		return nil, err
	}

	nl := bytes.IndexByte(plain, '\n')
	if nl < 0 {
		return nil, fmt.Errorf("%w: missing file header", verrors.ErrDecryptionFailed)
	}
	var header fileHeader
	if err := json.Unmarshal(plain[:nl], &header); err != nil {
		return nil, fmt.Errorf("%w: malformed file header", verrors.ErrDecryptionFailed)
	}

	zr, err := gzip.NewReader(bytes.NewReader(plain[nl+1:]))
	if err != nil {
		return nil, fmt.Errorf("decompressing file %s: %w", id, err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing file %s: %w", id, err)
	}

	return &scene.BinaryFile{
		ID:       id,
		MimeType: header.MimeType,
		Data:     data,
		Created:  header.Created,
	}, nil
}

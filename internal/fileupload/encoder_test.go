package fileupload

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/scene"
)

func testSecret(t *testing.T) string {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	return key.ExportSecret()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	secret := testSecret(t)
	files := map[scene.FileID]scene.BinaryFile{
		"img-1": {ID: "img-1", MimeType: "image/png", Data: bytes.Repeat([]byte{0x89, 0x50}, 5*1024), Created: 1700000000},
		"img-2": {ID: "img-2", MimeType: "image/jpeg", Data: []byte("tiny"), Created: 1700000001},
	}

	encoded, skipped, err := EncodeForUpload(files, secret, DefaultMaxBytes)
	if err != nil {
		t.Fatalf("EncodeForUpload failed: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("expected no skipped files, got %v", skipped)
	}
	if len(encoded) != 2 {
		t.Fatalf("expected 2 encoded files, got %d", len(encoded))
	}

	for id, want := range files {
		got, err := DecodeDownloaded(encoded[id].Sealed, secret, id)
		if err != nil {
			t.Fatalf("DecodeDownloaded(%s) failed: %v", id, err)
		}
		if !bytes.Equal(got.Data, want.Data) {
			t.Errorf("file %s payload mismatch", id)
		}
		if got.MimeType != want.MimeType {
			t.Errorf("file %s mime = %q, want %q", id, got.MimeType, want.MimeType)
		}
		if got.Created != want.Created {
			t.Errorf("file %s created = %d, want %d", id, got.Created, want.Created)
		}
	}
}

func TestEncodeSizeBudget(t *testing.T) {
	secret := testSecret(t)
	const maxBytes = 1024

	files := map[scene.FileID]scene.BinaryFile{
		"exact": {ID: "exact", Data: make([]byte, maxBytes)},
		"over":  {ID: "over", Data: make([]byte, maxBytes+1)},
	}

	encoded, skipped, err := EncodeForUpload(files, secret, maxBytes)
	if err != nil {
		t.Fatalf("EncodeForUpload failed: %v", err)
	}

	// Exactly maxBytes succeeds.
	if _, ok := encoded["exact"]; !ok {
		t.Error("file of exactly maxBytes was not encoded")
	}

	// maxBytes+1 is skipped and reported, never truncated.
	if _, ok := encoded["over"]; ok {
		t.Error("oversized file was encoded")
	}
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped file, got %d", len(skipped))
	}
	if skipped[0].ID != "over" {
		t.Errorf("skipped id = %s, want over", skipped[0].ID)
	}
	if !errors.Is(skipped[0].Err, verrors.ErrFileTooLarge) {
		t.Errorf("skipped err = %v, want ErrFileTooLarge", skipped[0].Err)
	}
}

func TestOversizedFileDoesNotBlockOthers(t *testing.T) {
	secret := testSecret(t)
	files := map[scene.FileID]scene.BinaryFile{
		"small": {ID: "small", Data: []byte("ok")},
		"huge":  {ID: "huge", Data: make([]byte, 2048)},
	}

	encoded, skipped, err := EncodeForUpload(files, secret, 1024)
	if err != nil {
		t.Fatalf("EncodeForUpload failed: %v", err)
	}
	if len(encoded) != 1 || len(skipped) != 1 {
		t.Fatalf("expected 1 encoded and 1 skipped, got %d/%d", len(encoded), len(skipped))
	}
}

func TestFilesUseDistinctSubkeys(t *testing.T) {
	secret := testSecret(t)
	data := []byte("identical payload")
	files := map[scene.FileID]scene.BinaryFile{
		"a": {ID: "a", Data: data},
		"b": {ID: "b", Data: data},
	}

	encoded, _, err := EncodeForUpload(files, secret, DefaultMaxBytes)
	if err != nil {
		t.Fatalf("EncodeForUpload failed: %v", err)
	}

	// Decoding a's blob under b's id must fail: the subkeys differ.
	if _, err := DecodeDownloaded(encoded["a"].Sealed, secret, "b"); !errors.Is(err, verrors.ErrDecryptionFailed) {
		t.Errorf("cross-file decode: got %v, want ErrDecryptionFailed", err)
	}
}

func TestEncodeRejectsBadSecret(t *testing.T) {
	_, _, err := EncodeForUpload(nil, "not-a-valid-secret", DefaultMaxBytes)
	if !errors.Is(err, verrors.ErrInvalidKeyFormat) {
		t.Errorf("got %v, want ErrInvalidKeyFormat", err)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	secret := testSecret(t)
	files := map[scene.FileID]scene.BinaryFile{
		"f": {ID: "f", Data: []byte("payload")},
	}
	encoded, _, err := EncodeForUpload(files, secret, DefaultMaxBytes)
	if err != nil {
		t.Fatalf("EncodeForUpload failed: %v", err)
	}

	other := testSecret(t)
	if _, err := DecodeDownloaded(encoded["f"].Sealed, other, "f"); !errors.Is(err, verrors.ErrDecryptionFailed) {
		t.Errorf("wrong secret: got %v, want ErrDecryptionFailed", err)
	}
}

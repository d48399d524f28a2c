package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/fileupload"
	"github.com/vellum-app/vellum/internal/link"
	"github.com/vellum-app/vellum/internal/scene"
)

// backendResponse is the JSON shape the blob backend answers with: an id on
// success, an error class on failure.
type backendResponse struct {
	ID         string `json:"id"`
	ErrorClass string `json:"error_class"`
}

const errorClassTooLarge = "RequestTooLargeError"

// FailedFile reports a file whose upload failed after the scene payload
// itself succeeded.
type FailedFile struct {
	ID  scene.FileID
	Err error
}

// ExportResult is the outcome of a successful scene export.
type ExportResult struct {
	// ID is the non-secret blob id assigned by the backend.
	ID string

	// Secret is the 22-character decryption secret. It exists only here
	// and inside the link fragment.
	Secret string

	// URL is the share link, secret confined to the fragment.
	URL string

	// SkippedFiles lists files left out for exceeding the size ceiling.
	SkippedFiles []fileupload.SkippedFile

	// FailedFiles lists files whose upload failed. File uploads are
	// independent, so one failure does not undo the rest.
	FailedFiles []FailedFile
}

// ExportScene encrypts and uploads a scene, then its files, and returns the
// share link. The payload upload must complete first: file storage paths are
// namespaced by the returned blob id. File uploads then proceed
// concurrently, with no ordering requirement between them.
//
// The key is generated fresh for this call and never reused across exports.
// Nothing is retried: a failure is classified and reported once.
func (c *Client) ExportScene(ctx context.Context, doc *scene.Document, origin string) (*ExportResult, error) {
	payload, err := scene.Serialize(doc.Elements, doc.AppState)
	if err != nil {
		return nil, err
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	env, err := crypto.Encrypt(key, payload)
	if err != nil {
		return nil, err
	}
	secret := key.ExportSecret()

	// Encode files before touching the network, so an oversized file is
	// known to the caller even if it later decides to abort.
	encoded, skipped, err := fileupload.EncodeForUpload(doc.Files, secret, c.cfg.FileUploadMaxBytes)
	if err != nil {
		return nil, err
	}

	id, err := c.uploadPayload(ctx, env.Frame())
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		ID:           id,
		Secret:       secret,
		URL:          link.BuildShareLink(origin, id, secret),
		SkippedFiles: skipped,
	}

	result.FailedFiles = c.uploadFiles(ctx, shareLinkFilePrefix(id), encoded)
	return result, nil
}

// uploadPayload POSTs the framed bytes and parses the backend's verdict.
func (c *Client) uploadPayload(ctx context.Context, framed []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BackendPostURL, bytes.NewReader(framed))
	if err != nil {
		return "", fmt.Errorf("%w: %v", verrors.ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", verrors.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", verrors.ErrUploadFailed, err)
	}

	var parsed backendResponse
	// The backend answers JSON for both outcomes; an unparseable body is a
	// generic failure.
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: status %d", verrors.ErrUploadFailed, resp.StatusCode)
	}

	if parsed.ErrorClass == errorClassTooLarge {
		return "", verrors.ErrUploadTooLarge
	}
	if parsed.ErrorClass != "" {
		return "", fmt.Errorf("%w: %s", verrors.ErrUploadFailed, parsed.ErrorClass)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || parsed.ID == "" {
		return "", fmt.Errorf("%w: status %d", verrors.ErrUploadFailed, resp.StatusCode)
	}
	return parsed.ID, nil
}

// uploadFiles pushes encoded files concurrently. Each upload is independent;
// failures are collected, not propagated, so the caller can decide what a
// partial file set means for its user.
func (c *Client) uploadFiles(ctx context.Context, prefix string, encoded map[scene.FileID]fileupload.EncodedFile) []FailedFile {
	if len(encoded) == 0 {
		return nil
	}

	var (
		mu     sync.Mutex
		failed []FailedFile
		wg     sync.WaitGroup
	)
	for id, file := range encoded {
		wg.Add(1)
		go func(id scene.FileID, file fileupload.EncodedFile) {
			defer wg.Done()
			if err := c.PutFile(ctx, prefix, id, file.Sealed); err != nil {
				mu.Lock()
				failed = append(failed, FailedFile{ID: id, Err: err})
				mu.Unlock()
			}
		}(id, file)
	}
	wg.Wait()
	return failed
}

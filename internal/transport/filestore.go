package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/scene"
)

// shareLinkFilePrefix namespaces file blobs under the scene's blob id. The
// payload upload must have returned the id before any file is written.
func shareLinkFilePrefix(id string) string {
	return "files/shareLinks/" + id
}

func (c *Client) fileURL(prefix string, id scene.FileID) string {
	base := strings.TrimRight(c.cfg.FileStoreURL, "/")
	return base + "/" + strings.Trim(prefix, "/") + "/" + string(id)
}

// PutFile writes one sealed file blob under the given prefix. The store is
// append-only from this client's perspective: every export writes to a fresh
// id, so there is nothing to lock or overwrite.
func (c *Client) PutFile(ctx context.Context, prefix string, id scene.FileID, sealed []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.fileURL(prefix, id), bytes.NewReader(sealed))
	if err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: file %s: status %d", verrors.ErrUploadFailed, id, resp.StatusCode)
	}
	return nil
}

// GetFile fetches one sealed file blob.
func (c *Client) GetFile(ctx context.Context, prefix string, id scene.FileID) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(prefix, id), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrFetchFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: file %s: status %d", verrors.ErrFetchFailed, id, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

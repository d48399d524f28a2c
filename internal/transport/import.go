package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/scene"
)

// ImportScene fetches and decrypts a remote scene. Failures are classified
// once: a transport or status problem is ErrFetchFailed, an undecryptable
// payload is ErrDecryptionFailed. No retries.
func (c *Client) ImportScene(ctx context.Context, id, secret string) (*scene.ImportedDocument, error) {
	key, err := crypto.ImportSecret(secret)
	if err != nil {
		return nil, err
	}

	framed, err := c.fetchPayload(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := crypto.DecryptFramed(key, framed)
	if err != nil {
		return nil, err
	}

	return scene.Parse(payload)
}

func (c *Client) fetchPayload(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BackendGetURL+id, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrFetchFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", verrors.ErrFetchFailed, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrFetchFailed, err)
	}
	return body, nil
}

// LoadScene builds the working scene for the editor. With both id and secret
// present, the remote scene is fetched, decrypted and merged over local
// state; with either absent, local state alone is restored. The returned
// document always has an empty files map: files are fetched separately.
func (c *Client) LoadScene(ctx context.Context, id, secret string, localAppState map[string]any, localElements []scene.Element) (*scene.Document, error) {
	if id == "" || secret == "" {
		return scene.Restore(nil, localAppState, localElements), nil
	}

	imported, err := c.ImportScene(ctx, id, secret)
	if err != nil {
		return nil, err
	}
	return scene.Restore(imported, localAppState, localElements), nil
}

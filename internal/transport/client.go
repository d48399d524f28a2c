package transport

import (
	"net/http"
	"time"

	"github.com/vellum-app/vellum/internal/fileupload"
)

// Config holds the remote endpoints and upload limits for one client. It is
// passed in at construction; there is no process-global endpoint state.
type Config struct {
	// BackendPostURL receives framed encrypted scene payloads via POST.
	BackendPostURL string

	// BackendGetURL serves raw payload bytes at BackendGetURL + id.
	BackendGetURL string

	// FileStoreURL serves encrypted file blobs under namespaced paths.
	FileStoreURL string

	// SocketServerURL is the collaboration socket endpoint. It is carried
	// in configuration for room links; this client never connects to it
	// (real-time transport is out of scope).
	SocketServerURL string

	// FileUploadMaxBytes is the per-file plaintext ceiling.
	FileUploadMaxBytes int64
}

// Client talks to the blob backend and file store. All operations are
// single-flight, caller-invoked tasks: no background scheduler, no retries.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a transport client. A nil httpClient gets a default with
// a generous timeout: uploads are single user-triggered operations, not
// latency-sensitive calls.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if cfg.FileUploadMaxBytes <= 0 {
		cfg.FileUploadMaxBytes = fileupload.DefaultMaxBytes
	}
	return &Client{cfg: cfg, http: httpClient}
}

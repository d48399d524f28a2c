package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/scene"
)

// fakeBackend is an httptest-backed blob backend and file store.
type fakeBackend struct {
	mu       sync.Mutex
	payloads map[string][]byte
	files    map[string][]byte
	nextID   string

	payloadPosts int
	filePuts     int

	rejectTooLarge bool
	failStatus     int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		payloads: map[string][]byte{},
		files:    map[string][]byte{},
		nextID:   "blob-1",
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v2/post/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.payloadPosts++

		if b.failStatus != 0 {
			w.WriteHeader(b.failStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_class": "InternalError"})
			return
		}
		if b.rejectTooLarge {
			_ = json.NewEncoder(w).Encode(map[string]string{"error_class": "RequestTooLargeError"})
			return
		}

		body, _ := io.ReadAll(r.Body)
		b.payloads[b.nextID] = body
		_ = json.NewEncoder(w).Encode(map[string]string{"id": b.nextID})
	})

	mux.HandleFunc("GET /api/v2/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		payload, ok := b.payloads[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(payload)
	})

	mux.HandleFunc("PUT /files/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.filePuts++
		body, _ := io.ReadAll(r.Body)
		b.files[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /files/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		blob, ok := b.files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(blob)
	})

	return mux
}

func newTestClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BackendPostURL: srv.URL + "/api/v2/post/",
		BackendGetURL:  srv.URL + "/api/v2/",
		FileStoreURL:   srv.URL + "/",
	}, srv.Client())
}

func testDoc() *scene.Document {
	return &scene.Document{
		Elements: []scene.Element{
			{"id": "e1", "type": "rectangle", "x": 1.0},
			{"id": "e2", "type": "arrow"},
		},
		AppState: map[string]any{"viewBackgroundColor": "#fff"},
		Files:    map[scene.FileID]scene.BinaryFile{},
	}
}

func TestExportSceneSuccess(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	result, err := client.ExportScene(context.Background(), testDoc(), "https://app.vellum.dev")
	if err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}

	if result.ID != "blob-1" {
		t.Errorf("id = %q, want blob-1", result.ID)
	}
	if len(result.Secret) != 22 {
		t.Errorf("secret length = %d, want 22", len(result.Secret))
	}
	wantFragment := "#json=blob-1," + result.Secret
	if !strings.HasSuffix(result.URL, wantFragment) {
		t.Errorf("url %q does not end with %q", result.URL, wantFragment)
	}

	// The stored payload must be opaque: an encrypted blob, not the scene JSON.
	stored := backend.payloads["blob-1"]
	if strings.Contains(string(stored), "rectangle") {
		t.Error("stored payload contains plaintext scene content")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	result, err := client.ExportScene(context.Background(), testDoc(), "https://app.vellum.dev")
	if err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}

	imported, err := client.ImportScene(context.Background(), result.ID, result.Secret)
	if err != nil {
		t.Fatalf("ImportScene failed: %v", err)
	}
	if len(imported.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(imported.Elements))
	}
	if imported.Elements[0].ID() != "e1" || imported.Elements[1].ID() != "e2" {
		t.Error("element order lost in round trip")
	}
}

func TestExportSceneWithFiles(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	doc := testDoc()
	doc.Files = map[scene.FileID]scene.BinaryFile{
		"f1": {ID: "f1", MimeType: "image/png", Data: make([]byte, 10*1024)},
		"f2": {ID: "f2", MimeType: "image/png", Data: make([]byte, 512)},
		"f3": {ID: "f3", MimeType: "image/png", Data: make([]byte, 2048)},
	}

	result, err := client.ExportScene(context.Background(), doc, "https://app.vellum.dev")
	if err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}
	if len(result.FailedFiles) != 0 {
		t.Fatalf("unexpected failed files: %v", result.FailedFiles)
	}
	if backend.filePuts != 3 {
		t.Errorf("file puts = %d, want 3", backend.filePuts)
	}

	// Files land under the namespaced prefix keyed by the blob id.
	for _, id := range []string{"f1", "f2", "f3"} {
		path := "/files/shareLinks/blob-1/" + id
		if _, ok := backend.files[path]; !ok {
			t.Errorf("file %s not stored at %s", id, path)
		}
	}
}

func TestExportSceneSkipsOversizedFiles(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		BackendPostURL:     srv.URL + "/api/v2/post/",
		BackendGetURL:      srv.URL + "/api/v2/",
		FileStoreURL:       srv.URL + "/",
		FileUploadMaxBytes: 1024,
	}, srv.Client())

	doc := testDoc()
	doc.Files = map[scene.FileID]scene.BinaryFile{
		"ok":  {ID: "ok", Data: make([]byte, 100)},
		"big": {ID: "big", Data: make([]byte, 4096)},
	}

	result, err := client.ExportScene(context.Background(), doc, "https://app.vellum.dev")
	if err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}
	if len(result.SkippedFiles) != 1 || result.SkippedFiles[0].ID != "big" {
		t.Errorf("skipped = %v, want [big]", result.SkippedFiles)
	}
	if backend.filePuts != 1 {
		t.Errorf("file puts = %d, want 1", backend.filePuts)
	}
}

func TestExportSceneTooLarge(t *testing.T) {
	backend := newFakeBackend()
	backend.rejectTooLarge = true
	client := newTestClient(t, backend)

	doc := testDoc()
	doc.Files = map[scene.FileID]scene.BinaryFile{
		"f1": {ID: "f1", Data: make([]byte, 256)},
	}

	_, err := client.ExportScene(context.Background(), doc, "https://app.vellum.dev")
	if !errors.Is(err, verrors.ErrUploadTooLarge) {
		t.Fatalf("got %v, want ErrUploadTooLarge", err)
	}

	// No file uploads after a failed payload upload.
	if backend.filePuts != 0 {
		t.Errorf("file puts = %d, want 0", backend.filePuts)
	}
}

func TestExportSceneUploadFailedNoRetry(t *testing.T) {
	backend := newFakeBackend()
	backend.failStatus = http.StatusInternalServerError
	client := newTestClient(t, backend)

	_, err := client.ExportScene(context.Background(), testDoc(), "https://app.vellum.dev")
	if !errors.Is(err, verrors.ErrUploadFailed) {
		t.Fatalf("got %v, want ErrUploadFailed", err)
	}
	if backend.payloadPosts != 1 {
		t.Errorf("payload posts = %d, want exactly 1 (no retries)", backend.payloadPosts)
	}
}

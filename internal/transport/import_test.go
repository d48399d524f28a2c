package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/scene"
)

func TestImportSceneFetchError(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	_, err = client.ImportScene(context.Background(), "missing-id", key.ExportSecret())
	if !errors.Is(err, verrors.ErrFetchFailed) {
		t.Errorf("got %v, want ErrFetchFailed", err)
	}
}

func TestImportSceneWrongSecret(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	result, err := client.ExportScene(context.Background(), testDoc(), "https://app.vellum.dev")
	if err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}

	other, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	_, err = client.ImportScene(context.Background(), result.ID, other.ExportSecret())
	if !errors.Is(err, verrors.ErrDecryptionFailed) {
		t.Errorf("got %v, want ErrDecryptionFailed", err)
	}
}

func TestImportSceneRejectsMalformedSecret(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	_, err := client.ImportScene(context.Background(), "any", "bad")
	if !errors.Is(err, verrors.ErrInvalidKeyFormat) {
		t.Errorf("got %v, want ErrInvalidKeyFormat", err)
	}
}

func TestLoadSceneLocalOnly(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	local := []scene.Element{{"id": "local", "type": "ellipse"}}
	doc, err := client.LoadScene(context.Background(), "", "", map[string]any{"theme": "dark"}, local)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if len(doc.Elements) != 1 || doc.Elements[0].ID() != "local" {
		t.Errorf("expected local elements, got %v", doc.Elements)
	}
	if doc.AppState["theme"] != "dark" {
		t.Error("local appState lost")
	}
	if len(doc.Files) != 0 {
		t.Error("files map must be empty at this layer")
	}
}

func TestLoadSceneMergesRemoteOverLocal(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	remote := testDoc()
	remote.AppState["viewBackgroundColor"] = "#123456"
	result, err := client.ExportScene(context.Background(), remote, "https://app.vellum.dev")
	if err != nil {
		t.Fatalf("ExportScene failed: %v", err)
	}

	localAppState := map[string]any{"viewBackgroundColor": "#ffffff", "zoom": 2.0}
	localElements := []scene.Element{{"id": "stale", "type": "rectangle"}}

	doc, err := client.LoadScene(context.Background(), result.ID, result.Secret, localAppState, localElements)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}

	if len(doc.Elements) != 2 {
		t.Errorf("remote elements should win, got %v", doc.Elements)
	}
	if doc.AppState["viewBackgroundColor"] != "#123456" {
		t.Error("remote appState should take precedence")
	}
	if doc.AppState["zoom"] != 2.0 {
		t.Error("local-only setting lost")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	client := newTestClient(t, backend)

	sealed := []byte("sealed-bytes")
	if err := client.PutFile(context.Background(), "files/shareLinks/abc", "f1", sealed); err != nil {
		t.Fatalf("PutFile failed: %v", err)
	}
	got, err := client.GetFile(context.Background(), "files/shareLinks/abc", "f1")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(got) != string(sealed) {
		t.Errorf("file round trip mismatch: %q", got)
	}
}

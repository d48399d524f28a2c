package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vellum-app/vellum/internal/fileupload"
	"github.com/vellum-app/vellum/internal/link"
	"github.com/vellum-app/vellum/internal/scene"
	"github.com/vellum-app/vellum/internal/transport"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Link is the share link, fragment included.
	Link string

	// OutputPath is where the restored scene JSON is written.
	OutputPath string

	// LocalScenePath optionally names a local scene whose UI settings
	// survive the merge. Remote content wins for elements and app state.
	LocalScenePath string

	// WithFiles also downloads the attachments referenced by the scene's
	// elements into FilesDir.
	WithFiles bool

	// FilesDir is where downloaded attachments are written.
	// Defaults to OutputPath + ".files".
	FilesDir string

	// Client overrides the transport client. Nil builds one from the
	// user config.
	Client *transport.Client
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// ID is the blob id the scene was fetched from.
	ID string

	// OutputPath is where the scene was written.
	OutputPath string

	// ElementCount is the number of restored elements.
	ElementCount int

	// FileCount is the number of attachments downloaded.
	FileCount int
}

// ImportScene fetches a shared scene, decrypts it, merges it with optional
// local state and writes the result to disk.
//
// Returns ErrInvalidShareLink for a malformed link, ErrFetchFailed when the
// backend does not serve the blob, and ErrDecryptionFailed when neither
// framing opens the payload. Each failure surfaces exactly once; there are
// no retries.
func ImportScene(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	id, secret, err := link.ParseShareLink(opts.Link)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client, err = buildClient()
		if err != nil {
			return nil, err
		}
	}

	var localAppState map[string]any
	var localElements []scene.Element
	if opts.LocalScenePath != "" {
		local, err := readLocalScene(opts.LocalScenePath)
		if err != nil {
			return nil, err
		}
		localAppState = local.AppState
		localElements = local.Elements
	}

	doc, err := client.LoadScene(ctx, id, secret, localAppState, localElements)
	if err != nil {
		return nil, err
	}

	if err := writeScene(opts.OutputPath, doc); err != nil {
		return nil, err
	}

	result := &ImportResult{
		ID:           id,
		OutputPath:   opts.OutputPath,
		ElementCount: len(doc.Elements),
	}

	if opts.WithFiles {
		filesDir := opts.FilesDir
		if filesDir == "" {
			filesDir = opts.OutputPath + ".files"
		}
		count, err := downloadAttachments(ctx, client, id, secret, doc, filesDir)
		if err != nil {
			return nil, err
		}
		result.FileCount = count
	}

	return result, nil
}

func writeScene(path string, doc *scene.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing scene file: %w", err)
	}
	return nil
}

// downloadAttachments fetches and decrypts every file the scene's elements
// reference. Attachments are fetched separately from the scene payload and
// never ride inside it.
func downloadAttachments(ctx context.Context, client *transport.Client, id, secret string, doc *scene.Document, dir string) (int, error) {
	ids := referencedFileIDs(doc.Elements)
	if len(ids) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return 0, fmt.Errorf("creating attachments directory: %w", err)
	}

	prefix := "files/shareLinks/" + id
	count := 0
	for _, fileID := range ids {
		sealed, err := client.GetFile(ctx, prefix, fileID)
		if err != nil {
			return count, err
		}
		file, err := fileupload.DecodeDownloaded(sealed, secret, fileID)
		if err != nil {
			return count, err
		}
		out := filepath.Join(dir, filepath.Base(string(fileID)))
		if err := os.WriteFile(out, file.Data, 0600); err != nil {
			return count, fmt.Errorf("writing attachment %s: %w", fileID, err)
		}
		count++
	}
	return count, nil
}

// referencedFileIDs collects the distinct fileId values carried by elements,
// in element order.
func referencedFileIDs(elements []scene.Element) []scene.FileID {
	seen := map[scene.FileID]bool{}
	var ids []scene.FileID
	for _, el := range elements {
		raw, _ := el["fileId"].(string)
		if raw == "" {
			continue
		}
		id := scene.FileID(raw)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	verrors "github.com/vellum-app/vellum/internal/errors"
	"github.com/vellum-app/vellum/internal/fileupload"
	"github.com/vellum-app/vellum/internal/scene"
	"github.com/vellum-app/vellum/internal/transport"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// ScenePath is the local scene JSON file to export.
	ScenePath string

	// FilesDir optionally names a directory of attached binary files.
	// Each regular file becomes one attachment, id = file name.
	FilesDir string

	// Origin is the web app origin the share link points at.
	Origin string

	// Client overrides the transport client. Nil builds one from the
	// user config.
	Client *transport.Client
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// ID is the blob id assigned by the backend.
	ID string

	// URL is the share link. The decryption secret lives only in its
	// fragment.
	URL string

	// ElementCount is the number of elements exported.
	ElementCount int

	// FileCount is the number of files uploaded.
	FileCount int

	// SkippedFiles lists attachments left out for exceeding the size
	// ceiling.
	SkippedFiles []fileupload.SkippedFile

	// FailedFiles lists attachments whose upload failed after the scene
	// payload succeeded.
	FailedFiles []transport.FailedFile
}

// ExportScene encrypts a local scene under a fresh key and uploads it,
// returning the share link.
//
// Returns ErrSceneNotFound if the scene file does not exist.
// Returns ErrConfigNotInitialized if no client is given and the user config
// is missing.
// Returns ErrUploadTooLarge or ErrUploadFailed when the backend rejects the
// payload; nothing is retried.
func ExportScene(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	doc, err := readLocalScene(opts.ScenePath)
	if err != nil {
		return nil, err
	}

	if opts.FilesDir != "" {
		files, err := readAttachments(opts.FilesDir)
		if err != nil {
			return nil, err
		}
		doc.Files = files
	}

	client := opts.Client
	if client == nil {
		client, err = buildClient()
		if err != nil {
			return nil, err
		}
	}

	result, err := client.ExportScene(ctx, doc, opts.Origin)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		ID:           result.ID,
		URL:          result.URL,
		ElementCount: len(doc.Elements),
		FileCount:    len(doc.Files) - len(result.SkippedFiles),
		SkippedFiles: result.SkippedFiles,
		FailedFiles:  result.FailedFiles,
	}, nil
}

// readLocalScene loads and restores a scene document from disk.
func readLocalScene(path string) (*scene.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", verrors.ErrSceneNotFound, path)
		}
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	imported, err := scene.Parse(data)
	if err != nil {
		return nil, err
	}
	return scene.Restore(imported, nil, nil), nil
}

// readAttachments loads every regular file in dir as one attachment.
func readAttachments(dir string) (map[scene.FileID]scene.BinaryFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading attachments directory: %w", err)
	}

	files := make(map[scene.FileID]scene.BinaryFile, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", entry.Name(), err)
		}
		id := scene.FileID(entry.Name())
		files[id] = scene.BinaryFile{
			ID:       id,
			MimeType: mimeTypeFor(entry.Name()),
			Data:     data,
			Created:  time.Now().UnixMilli(),
		}
	}
	return files, nil
}

func mimeTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

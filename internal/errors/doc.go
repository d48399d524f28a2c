// Package errors provides typed error values for the Vellum application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: key generation or decoding failures (ErrKeyGeneration, ErrInvalidKeyFormat)
//   - Envelope errors: sealing/opening failures (ErrDecryptionFailed, ErrFileTooLarge)
//   - Transport errors: blob backend failures (ErrFetchFailed, ErrUploadTooLarge, ErrUploadFailed)
//   - Link errors: malformed links (ErrInvalidShareLink, ErrInvalidRoomLink)
//   - Local state errors: missing files or config (ErrSceneNotFound, ErrConfigNotInitialized)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(key) != KeyLen {
//	    return nil, errors.ErrInvalidKeyFormat
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.ImportScene(ctx, opts)
//	if errors.Is(err, verrors.ErrDecryptionFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("fetching scene %s: %w", id, errors.ErrFetchFailed)
package errors

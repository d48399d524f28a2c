package errors

import "errors"

// Key errors indicate problems generating or decoding encryption keys.
var (
	// ErrKeyGeneration indicates the random key could not be generated.
	ErrKeyGeneration = errors.New("failed to generate encryption key")

	// ErrInvalidKeyFormat indicates a secret string could not be decoded into a key.
	ErrInvalidKeyFormat = errors.New("invalid encryption key format")
)

// Envelope errors indicate problems sealing or opening encrypted payloads.
var (
	// ErrDecryptionFailed indicates both the current and the legacy framing
	// failed to decrypt a payload. The data is unrecoverable with this key.
	ErrDecryptionFailed = errors.New("failed to decrypt payload")

	// ErrFileTooLarge indicates a file exceeds the per-file upload ceiling.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// Transport errors indicate failures talking to the blob backend.
var (
	// ErrFetchFailed indicates the remote scene could not be fetched.
	ErrFetchFailed = errors.New("failed to fetch remote scene")

	// ErrUploadTooLarge indicates the backend rejected the payload as too large.
	ErrUploadTooLarge = errors.New("scene payload is too large to upload")

	// ErrUploadFailed indicates the backend rejected the upload for another reason.
	ErrUploadFailed = errors.New("failed to upload scene")
)

// Link errors indicate malformed share or room links.
var (
	// ErrInvalidShareLink indicates a share link is missing the json fragment.
	ErrInvalidShareLink = errors.New("invalid share link")

	// ErrInvalidRoomLink indicates a room link is malformed or carries a
	// wrong-length room key.
	ErrInvalidRoomLink = errors.New("invalid room link")
)

// Local state errors indicate issues with files or configuration on disk.
var (
	// ErrSceneNotFound indicates the local scene file does not exist.
	ErrSceneNotFound = errors.New("scene file not found")

	// ErrConfigNotInitialized indicates the vellum config has not been created.
	ErrConfigNotInitialized = errors.New("config has not been initialized")
)

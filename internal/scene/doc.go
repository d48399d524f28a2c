// Package scene defines the transportable scene document and its codec:
// canonical JSON serialization for export, defaulting parse of untrusted
// decrypted payloads, and the restore merge of remote content with local
// editor state.
package scene

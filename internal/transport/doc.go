// Package transport orchestrates scene exchange against the remote blob
// backend and file store: encrypt-and-upload for export, fetch-and-decrypt
// for import. Operations are single-flight and never retried; the payload
// upload strictly precedes file uploads because file paths are namespaced by
// the returned blob id.
package transport

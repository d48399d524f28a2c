// Package crypto implements the symmetric encryption core of the scene
// exchange protocol: key generation and export, and the IV-prefixed
// AES-128-GCM envelope format with its legacy zero-IV read fallback.
//
// A scene is sealed under a fresh random key whose only portable form is a
// 22-character base64url secret, carried exclusively in URL fragments so it
// never reaches a server.
package crypto

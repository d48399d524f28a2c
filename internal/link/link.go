package link

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
)

const (
	// RoomIDLen is the number of random bytes in a room id before
	// hex-encoding.
	RoomIDLen = 16

	// RoomKeyLen is the textual length of a room key. It matches the
	// exported-secret length, so one generator serves both.
	RoomKeyLen = crypto.SecretLen

	shareMarker = "json="
	roomMarker  = "room="
)

// Room is a live-collaboration address: a non-secret room id and the room
// key that never leaves the URL fragment.
type Room struct {
	ID  string
	Key string
}

// BuildShareLink encodes a blob id and its decryption secret into a
// shareable URL. The secret is confined to the fragment at construction
// time: fragments are not sent in HTTP requests, so the secret never
// reaches a server.
func BuildShareLink(origin, id, secret string) string {
	return strings.TrimRight(origin, "/") + "/#" + shareMarker + id + "," + secret
}

// ParseShareLink extracts the blob id and secret from a share link. Only the
// fragment form is accepted; a secret smuggled into the query or path is an
// invalid link.
func ParseShareLink(raw string) (id, secret string, err error) {
	u, parseErr := url.Parse(raw)
	if parseErr != nil {
		return "", "", fmt.Errorf("%w: %v", verrors.ErrInvalidShareLink, parseErr)
	}

	frag := u.Fragment
	if !strings.HasPrefix(frag, shareMarker) {
		return "", "", fmt.Errorf("%w: missing %s fragment", verrors.ErrInvalidShareLink, shareMarker)
	}

	id, secret, found := strings.Cut(strings.TrimPrefix(frag, shareMarker), ",")
	if !found || id == "" {
		return "", "", fmt.Errorf("%w: fragment must be %s<id>,<key>", verrors.ErrInvalidShareLink, shareMarker)
	}
	if len(secret) != crypto.SecretLen {
		return "", "", fmt.Errorf("%w: key must be %d characters, got %d",
			verrors.ErrInvalidShareLink, crypto.SecretLen, len(secret))
	}
	return id, secret, nil
}

// NewRoom generates a fresh room id and room key.
func NewRoom() (*Room, error) {
	idBytes := make([]byte, RoomIDLen)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrKeyGeneration, err)
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Room{
		ID:  hex.EncodeToString(idBytes),
		Key: key.ExportSecret(),
	}, nil
}

// BuildRoomLink encodes a room into a collaboration URL, key in the
// fragment only.
func BuildRoomLink(origin string, room *Room) string {
	return strings.TrimRight(origin, "/") + "/#" + roomMarker + room.ID + "," + room.Key
}

// ParseRoomLink extracts a room id and key from a collaboration link. The
// key length is validated before any decryption is attempted; a wrong-length
// key can never open the room, so it is rejected up front.
func ParseRoomLink(raw string) (*Room, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrInvalidRoomLink, err)
	}

	frag := u.Fragment
	if !strings.HasPrefix(frag, roomMarker) {
		return nil, fmt.Errorf("%w: missing %s fragment", verrors.ErrInvalidRoomLink, roomMarker)
	}

	id, key, found := strings.Cut(strings.TrimPrefix(frag, roomMarker), ",")
	if !found {
		return nil, fmt.Errorf("%w: fragment must be %s<id>,<key>", verrors.ErrInvalidRoomLink, roomMarker)
	}
	if len(key) != RoomKeyLen {
		return nil, fmt.Errorf("%w: room key must be %d characters, got %d",
			verrors.ErrInvalidRoomLink, RoomKeyLen, len(key))
	}
	if len(id) < 2*RoomIDLen {
		return nil, fmt.Errorf("%w: room id too short", verrors.ErrInvalidRoomLink)
	}
	if _, err := hex.DecodeString(id); err != nil {
		return nil, fmt.Errorf("%w: room id is not hex", verrors.ErrInvalidRoomLink)
	}
	return &Room{ID: id, Key: key}, nil
}

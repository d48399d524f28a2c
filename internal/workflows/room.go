package workflows

import (
	"context"

	"github.com/vellum-app/vellum/internal/link"
)

// RoomOptions configures the room workflow.
type RoomOptions struct {
	// Origin is the web app origin the room link points at.
	Origin string
}

// RoomResult contains a freshly generated collaboration room.
type RoomResult struct {
	// RoomID is the non-secret room identifier.
	RoomID string

	// URL is the room link, key confined to the fragment.
	URL string
}

// NewRoom generates a collaboration room link: a random room id and a fresh
// 22-character room key that never leaves the fragment.
func NewRoom(_ context.Context, opts RoomOptions) (*RoomResult, error) {
	room, err := link.NewRoom()
	if err != nil {
		return nil, err
	}
	return &RoomResult{
		RoomID: room.ID,
		URL:    link.BuildRoomLink(opts.Origin, room),
	}, nil
}

// ParseRoom validates a collaboration link and returns its parts. A room
// key of the wrong length is rejected before any decryption is attempted.
func ParseRoom(raw string) (*link.Room, error) {
	return link.ParseRoomLink(raw)
}

package link

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/vellum-app/vellum/internal/crypto"
	verrors "github.com/vellum-app/vellum/internal/errors"
)

const testSecret = "AAAAAAAAAAAAAAAAAAAAAA" // 22 chars

func TestBuildShareLinkConfinesSecretToFragment(t *testing.T) {
	raw := BuildShareLink("https://app.vellum.dev", "abc123", testSecret)

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("built link does not parse: %v", err)
	}
	if strings.Contains(u.Path, testSecret) {
		t.Error("secret appears in the URL path")
	}
	if strings.Contains(u.RawQuery, testSecret) {
		t.Error("secret appears in the query string")
	}
	if !strings.Contains(u.Fragment, testSecret) {
		t.Error("secret missing from the fragment")
	}

	// Everything before the fragment delimiter must be secret-free.
	before, _, _ := strings.Cut(raw, "#")
	if strings.Contains(before, testSecret) {
		t.Error("secret appears before the fragment delimiter")
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	raw := BuildShareLink("https://app.vellum.dev/", "abc123", testSecret)
	id, secret, err := ParseShareLink(raw)
	if err != nil {
		t.Fatalf("ParseShareLink failed: %v", err)
	}
	if id != "abc123" || secret != testSecret {
		t.Errorf("round trip gave (%q, %q)", id, secret)
	}
}

func TestParseShareLinkRejectsBadLinks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no fragment", "https://app.vellum.dev/abc123"},
		{"secret in query", "https://app.vellum.dev/?json=abc," + testSecret},
		{"wrong marker", "https://app.vellum.dev/#room=abc," + testSecret},
		{"missing key", "https://app.vellum.dev/#json=abc"},
		{"missing id", "https://app.vellum.dev/#json=," + testSecret},
		{"short key", "https://app.vellum.dev/#json=abc,shortkey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseShareLink(tt.raw); !errors.Is(err, verrors.ErrInvalidShareLink) {
				t.Errorf("ParseShareLink(%q) = %v, want ErrInvalidShareLink", tt.raw, err)
			}
		})
	}
}

func TestNewRoom(t *testing.T) {
	room, err := NewRoom()
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	if len(room.ID) != 2*RoomIDLen {
		t.Errorf("room id length = %d, want %d hex chars", len(room.ID), 2*RoomIDLen)
	}
	if len(room.Key) != RoomKeyLen {
		t.Errorf("room key length = %d, want %d", len(room.Key), RoomKeyLen)
	}
	// The room key must be a usable encryption secret.
	if _, err := crypto.ImportSecret(room.Key); err != nil {
		t.Errorf("room key does not import as an encryption key: %v", err)
	}

	other, err := NewRoom()
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	if other.ID == room.ID {
		t.Error("two rooms share an id")
	}
}

func TestRoomLinkRoundTrip(t *testing.T) {
	room, err := NewRoom()
	if err != nil {
		t.Fatalf("NewRoom failed: %v", err)
	}
	raw := BuildRoomLink("https://app.vellum.dev", room)

	// Key stays out of path and query.
	before, _, _ := strings.Cut(raw, "#")
	if strings.Contains(before, room.Key) {
		t.Error("room key appears before the fragment delimiter")
	}

	parsed, err := ParseRoomLink(raw)
	if err != nil {
		t.Fatalf("ParseRoomLink failed: %v", err)
	}
	if parsed.ID != room.ID || parsed.Key != room.Key {
		t.Errorf("round trip gave %+v, want %+v", parsed, room)
	}
}

func TestParseRoomLinkKeyLength(t *testing.T) {
	id := strings.Repeat("ab", RoomIDLen)
	tests := []struct {
		name string
		key  string
	}{
		{"21 chars", strings.Repeat("a", 21)},
		{"23 chars", strings.Repeat("a", 23)},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "https://app.vellum.dev/#room=" + id + "," + tt.key
			if _, err := ParseRoomLink(raw); !errors.Is(err, verrors.ErrInvalidRoomLink) {
				t.Errorf("key of %d chars: got %v, want ErrInvalidRoomLink", len(tt.key), err)
			}
		})
	}
}

func TestParseRoomLinkRejectsBadIDs(t *testing.T) {
	key := strings.Repeat("a", RoomKeyLen)
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "abcd"},
		{"not hex", strings.Repeat("zz", RoomIDLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "https://app.vellum.dev/#room=" + tt.id + "," + key
			if _, err := ParseRoomLink(raw); !errors.Is(err, verrors.ErrInvalidRoomLink) {
				t.Errorf("id %q: got %v, want ErrInvalidRoomLink", tt.id, err)
			}
		})
	}
}

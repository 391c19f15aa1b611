package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire-level message kinds. The server's protocol revision uses
// "string" for system notices.
const (
	KindBroadcast   = "broadcast"
	KindReadyToggle = "ready_toggle"
	KindPlayerList  = "player_list"
	KindSystem      = "string"
)

// Ready toggle payloads as the server expects them.
const (
	ReadyContent    = "ready"
	NotReadyContent = "not ready"
)

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrUnknownKind    = errors.New("unknown message kind")
)

// Envelope is the wire unit shared by both directions. Content carries
// a value that is JSON-encoded a second time inside the outer document;
// Decode and the encode helpers keep that quirk contained here so the
// rest of the client only sees native values.
type Envelope struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id,omitempty"`
	Sender    string          `json:"sender,omitempty"`
	Content   json.RawMessage `json:"content"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// EncodeChat builds a broadcast frame for a chat message.
func EncodeChat(roomID, body string) ([]byte, error) {
	return encode(KindBroadcast, roomID, body)
}

// EncodeReadyToggle builds a ready_toggle frame announcing the new
// local ready state.
func EncodeReadyToggle(roomID string, ready bool) ([]byte, error) {
	content := NotReadyContent
	if ready {
		content = ReadyContent
	}
	return encode(KindReadyToggle, roomID, content)
}

func encode(kind, roomID, content string) ([]byte, error) {
	nested, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode nested content: %w", err)
	}

	env := Envelope{
		Type:    kind,
		RoomID:  roomID,
		Content: nested,
	}

	frame, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return frame, nil
}

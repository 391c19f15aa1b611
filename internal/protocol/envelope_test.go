package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/hilthontt/lobbycli/internal/domain"
)

func TestEncodeChat_DoubleEncodesContent(t *testing.T) {
	frame, err := EncodeChat("room-1", "hello")
	if err != nil {
		t.Fatalf("EncodeChat() unexpected error: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}

	if env.Type != KindBroadcast {
		t.Errorf("type = %q, want %q", env.Type, KindBroadcast)
	}
	if env.RoomID != "room-1" {
		t.Errorf("room_id = %q, want %q", env.RoomID, "room-1")
	}

	// The content field must itself be a JSON-encoded string.
	var nested string
	if err := json.Unmarshal(env.Content, &nested); err != nil {
		t.Fatalf("content is not a nested JSON string: %v", err)
	}
	if nested != "hello" {
		t.Errorf("nested content = %q, want %q", nested, "hello")
	}
}

func TestEncodeReadyToggle(t *testing.T) {
	tests := []struct {
		name  string
		ready bool
		want  string
	}{
		{name: "ready", ready: true, want: "ready"},
		{name: "not ready", ready: false, want: "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := EncodeReadyToggle("room-1", tt.ready)
			if err != nil {
				t.Fatalf("EncodeReadyToggle() unexpected error: %v", err)
			}

			var env Envelope
			if err := json.Unmarshal(frame, &env); err != nil {
				t.Fatalf("frame is not valid JSON: %v", err)
			}
			if env.Type != KindReadyToggle {
				t.Errorf("type = %q, want %q", env.Type, KindReadyToggle)
			}

			var nested string
			if err := json.Unmarshal(env.Content, &nested); err != nil {
				t.Fatalf("content is not a nested JSON string: %v", err)
			}
			if nested != tt.want {
				t.Errorf("nested content = %q, want %q", nested, tt.want)
			}
		})
	}
}

func TestDecode_PlayerList(t *testing.T) {
	frame := []byte(`{"type":"player_list","content":"[{\"name\":\"A\",\"ready\":true},{\"name\":\"B\",\"ready\":false}]","timestamp":"2025-01-02T03:04:05Z"}`)

	ev, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	roster, ok := ev.(RosterEvent)
	if !ok {
		t.Fatalf("Decode() = %T, want RosterEvent", ev)
	}

	want := []domain.Participant{
		{Name: "A", Ready: true},
		{Name: "B", Ready: false},
	}
	if len(roster.Participants) != len(want) {
		t.Fatalf("participants = %d, want %d", len(roster.Participants), len(want))
	}
	for i, p := range want {
		if roster.Participants[i] != p {
			t.Errorf("participant[%d] = %+v, want %+v", i, roster.Participants[i], p)
		}
	}
}

func TestDecode_Broadcast(t *testing.T) {
	frame := []byte(`{"type":"broadcast","sender":"Alice","content":"\"hi there\"","timestamp":"2025-01-02T03:04:05Z"}`)

	ev, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	chat, ok := ev.(ChatEvent)
	if !ok {
		t.Fatalf("Decode() = %T, want ChatEvent", ev)
	}
	if chat.Sender != "Alice" {
		t.Errorf("sender = %q, want %q", chat.Sender, "Alice")
	}
	if chat.Body != "hi there" {
		t.Errorf("body = %q, want %q", chat.Body, "hi there")
	}
	if chat.Timestamp != "2025-01-02T03:04:05Z" {
		t.Errorf("timestamp = %q, want %q", chat.Timestamp, "2025-01-02T03:04:05Z")
	}
}

func TestDecode_SystemNoticeIgnoresWireSender(t *testing.T) {
	// The wire sender is whatever the server put there; notices are
	// normalized to the system sender downstream, so the event itself
	// carries no sender at all.
	frame := []byte(`{"type":"string","sender":"Mallory","content":"\"Alice joined the room\"","timestamp":"2025-01-02T03:04:05Z"}`)

	ev, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	notice, ok := ev.(NoticeEvent)
	if !ok {
		t.Fatalf("Decode() = %T, want NoticeEvent", ev)
	}
	if notice.Body != "Alice joined the room" {
		t.Errorf("body = %q, want %q", notice.Body, "Alice joined the room")
	}
}

func TestDecode_RejectsBadFrames(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		wantErr error
	}{
		{name: "not JSON", frame: `hello world`, wantErr: ErrMalformedFrame},
		{name: "missing type", frame: `{"content":"\"x\""}`, wantErr: ErrMalformedFrame},
		{name: "numeric type", frame: `{"type":7,"content":"\"x\""}`, wantErr: ErrMalformedFrame},
		{name: "unknown kind", frame: `{"type":"private","content":"\"x\""}`, wantErr: ErrUnknownKind},
		{name: "plain content", frame: `{"type":"broadcast","content":42}`, wantErr: ErrMalformedFrame},
		{name: "player_list non-array nested", frame: `{"type":"player_list","content":"\"oops\""}`, wantErr: ErrMalformedFrame},
		{name: "player_list plain array not nested", frame: `{"type":"player_list","content":[{"name":"A","ready":true}]}`, wantErr: ErrMalformedFrame},
		{name: "broadcast nested not a string", frame: `{"type":"broadcast","content":"[1,2]"}`, wantErr: ErrMalformedFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode([]byte(tt.frame))
			if ev != nil {
				t.Fatalf("Decode() returned event %T for bad frame", ev)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_RoundTripReadyToggle(t *testing.T) {
	// Encoding true→false produces "not ready"; an echoed player_list
	// carrying ready:false must decode back into the roster shape.
	frame, err := EncodeReadyToggle("room-1", false)
	if err != nil {
		t.Fatalf("EncodeReadyToggle() unexpected error: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	var nested string
	if err := json.Unmarshal(env.Content, &nested); err != nil {
		t.Fatalf("content is not nested: %v", err)
	}
	if nested != NotReadyContent {
		t.Fatalf("nested content = %q, want %q", nested, NotReadyContent)
	}

	echoed := []byte(`{"type":"player_list","content":"[{\"name\":\"You\",\"ready\":false}]"}`)
	ev, err := Decode(echoed)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	roster := ev.(RosterEvent)
	if len(roster.Participants) != 1 || roster.Participants[0].Ready {
		t.Errorf("echoed roster = %+v, want single not-ready participant", roster.Participants)
	}
}

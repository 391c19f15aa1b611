package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/hilthontt/lobbycli/internal/domain"
	"github.com/tidwall/gjson"
)

// Decode turns one inbound text frame into an Event. A nil event with a
// non-nil error means the frame must be dropped; decoding is local and
// never terminates the connection.
func Decode(frame []byte) (Event, error) {
	if !gjson.ValidBytes(frame) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedFrame)
	}

	kind := gjson.GetBytes(frame, "type")
	if kind.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing type field", ErrMalformedFrame)
	}

	content := gjson.GetBytes(frame, "content")
	if content.Type != gjson.String {
		return nil, fmt.Errorf("%w: content is not a nested document", ErrMalformedFrame)
	}
	nested := content.String()

	switch kind.String() {
	case KindPlayerList:
		var participants []domain.Participant
		if err := json.Unmarshal([]byte(nested), &participants); err != nil {
			return nil, fmt.Errorf("%w: player_list content: %v", ErrMalformedFrame, err)
		}
		return RosterEvent{Participants: participants}, nil

	case KindBroadcast:
		body, err := nestedText(nested)
		if err != nil {
			return nil, fmt.Errorf("%w: broadcast content: %v", ErrMalformedFrame, err)
		}
		return ChatEvent{
			Sender:    gjson.GetBytes(frame, "sender").String(),
			Body:      body,
			Timestamp: gjson.GetBytes(frame, "timestamp").String(),
		}, nil

	case KindSystem:
		body, err := nestedText(nested)
		if err != nil {
			return nil, fmt.Errorf("%w: system content: %v", ErrMalformedFrame, err)
		}
		return NoticeEvent{
			Body:      body,
			Timestamp: gjson.GetBytes(frame, "timestamp").String(),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind.String())
	}
}

func nestedText(nested string) (string, error) {
	var body string
	if err := json.Unmarshal([]byte(nested), &body); err != nil {
		return "", err
	}
	return body, nil
}

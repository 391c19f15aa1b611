package protocol

import "github.com/hilthontt/lobbycli/internal/domain"

// Event is the decoded form of an inbound frame. The set is closed:
// anything the codec cannot place here is dropped by the caller.
type Event interface{ isEvent() }

// RosterEvent is a full replacement of the participant list.
type RosterEvent struct {
	Participants []domain.Participant
}

func (RosterEvent) isEvent() {}

// ChatEvent is a chat message relayed by the server, rendered with the
// sender as given on the wire.
type ChatEvent struct {
	Sender    string
	Body      string
	Timestamp string
}

func (ChatEvent) isEvent() {}

// NoticeEvent is a server-originated announcement. The wire sender is
// ignored; notices always render as coming from the system.
type NoticeEvent struct {
	Body      string
	Timestamp string
}

func (NoticeEvent) isEvent() {}

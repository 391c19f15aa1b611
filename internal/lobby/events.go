package lobby

import "github.com/hilthontt/lobbycli/internal/domain"

// Event is what a session reports to its consumer. Events are emitted
// in the exact order their causes were observed; the start gate is
// recomputed before each emission so the consumer never sees a stale
// affordance.
type Event interface{ isSessionEvent() }

// StatusChanged reports a lifecycle transition. ConnectionLost is set
// once, on an abnormal termination only; a clean leave never raises it.
type StatusChanged struct {
	Status         Status
	CanStart       bool
	ConnectionLost bool
}

func (StatusChanged) isSessionEvent() {}

// RosterUpdated reports a roster replacement or a local ready flip.
type RosterUpdated struct {
	Participants []domain.Participant
	LocalReady   bool
	CanStart     bool
}

func (RosterUpdated) isSessionEvent() {}

// ChatAppended reports one new chat log entry.
type ChatAppended struct {
	Entry    domain.ChatEntry
	CanStart bool
}

func (ChatAppended) isSessionEvent() {}

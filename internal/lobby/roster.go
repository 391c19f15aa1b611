package lobby

import "github.com/hilthontt/lobbycli/internal/domain"

// Roster holds the server-sourced participant list. The protocol has no
// incremental updates: every player_list frame replaces the roster
// wholesale. The client's own ready intent is tracked separately so the
// ready control stays responsive while the confirming snapshot is in
// flight.
type Roster struct {
	participants []domain.Participant
	localReady   bool
}

func NewRoster() *Roster {
	return &Roster{}
}

// ApplySnapshot replaces the entire roster.
func (r *Roster) ApplySnapshot(participants []domain.Participant) {
	next := make([]domain.Participant, len(participants))
	copy(next, participants)
	r.participants = next
}

// Participants returns a copy of the current roster.
func (r *Roster) Participants() []domain.Participant {
	out := make([]domain.Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

func (r *Roster) LocalReady() bool {
	return r.localReady
}

func (r *Roster) SetLocalReady(ready bool) {
	r.localReady = ready
}

// CanStart is the start gate: the lobby may move to the game only when
// the local player is ready, the roster is non-empty, every participant
// is ready, and the connection is live. It is a pure predicate and must
// be recomputed on every roster or status change.
func CanStart(localReady bool, participants []domain.Participant, status Status) bool {
	if !localReady || status != StatusConnected || len(participants) == 0 {
		return false
	}
	for _, p := range participants {
		if !p.Ready {
			return false
		}
	}
	return true
}

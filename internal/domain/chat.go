package domain

// SystemSender labels chat entries that originate from the server
// rather than a participant.
const SystemSender = "System"

// LocalSender labels the optimistic local echo of the user's own
// messages.
const LocalSender = "You"

// ChatEntry is one displayed line of the lobby chat. Entries are
// append-only: once displayed they are never mutated or removed.
type ChatEntry struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

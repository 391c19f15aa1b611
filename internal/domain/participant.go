package domain

// Participant is one member of a lobby as reported by the server.
// Identity is name-based; the client holds no id of its own, and the
// list is only ever replaced wholesale by a roster snapshot.
type Participant struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

package lobby

// Status is the lifecycle state of a room connection. A session walks
// idle → connecting → connected → {error | disconnected} and never
// re-enters connecting; retrying means building a new session.
type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusConnected
	StatusError
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

package lobby

import (
	"time"

	"github.com/google/uuid"
	"github.com/hilthontt/lobbycli/internal/domain"
)

// ChatLog is the append-only record of displayed messages. Sent
// messages are echoed locally before any server acknowledgment; if the
// server relays the sender's own broadcast back, the pending-echo
// window lets the session suppress the duplicate.
type ChatLog struct {
	entries []domain.ChatEntry
	pending []pendingEcho
	window  time.Duration

	now func() time.Time
}

type pendingEcho struct {
	body string
	at   time.Time
}

func NewChatLog(echoWindow time.Duration) *ChatLog {
	return &ChatLog{
		window: echoWindow,
		now:    time.Now,
	}
}

// AppendRemote records a message delivered by the server.
func (l *ChatLog) AppendRemote(sender, body, timestamp string) domain.ChatEntry {
	entry := domain.ChatEntry{
		ID:        uuid.NewString(),
		Sender:    sender,
		Body:      body,
		Timestamp: timestamp,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// AppendLocalEcho records the user's own message immediately, with a
// locally generated timestamp, and remembers it for echo suppression.
func (l *ChatLog) AppendLocalEcho(body string) domain.ChatEntry {
	now := l.now()

	entry := domain.ChatEntry{
		ID:        uuid.NewString(),
		Sender:    domain.LocalSender,
		Body:      body,
		Timestamp: now.Format(time.RFC3339),
	}
	l.entries = append(l.entries, entry)
	l.pending = append(l.pending, pendingEcho{body: body, at: now})
	return entry
}

// ConsumeEcho reports whether body matches a message we sent within the
// echo window, consuming the match so a second identical broadcast is
// displayed normally.
func (l *ChatLog) ConsumeEcho(body string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.pending[:0]
	matched := false
	for _, p := range l.pending {
		if p.at.Before(cutoff) {
			continue
		}
		if !matched && p.body == body {
			matched = true
			continue
		}
		kept = append(kept, p)
	}
	l.pending = kept
	return matched
}

// Entries returns a copy of the log in display order.
func (l *ChatLog) Entries() []domain.ChatEntry {
	out := make([]domain.ChatEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *ChatLog) Len() int {
	return len(l.entries)
}

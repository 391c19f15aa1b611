package lobby

import (
	"testing"
	"time"

	"github.com/hilthontt/lobbycli/internal/domain"
)

func TestChatLog_AppendLocalEcho(t *testing.T) {
	l := NewChatLog(5 * time.Second)

	entry := l.AppendLocalEcho("hello")

	if entry.Sender != domain.LocalSender {
		t.Errorf("sender = %q, want %q", entry.Sender, domain.LocalSender)
	}
	if entry.Body != "hello" {
		t.Errorf("body = %q, want %q", entry.Body, "hello")
	}
	if entry.ID == "" {
		t.Error("entry has no id")
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", entry.Timestamp, err)
	}
	if l.Len() != 1 {
		t.Errorf("log length = %d, want 1", l.Len())
	}
}

func TestChatLog_ConsumeEcho(t *testing.T) {
	l := NewChatLog(5 * time.Second)
	l.AppendLocalEcho("hello")

	if !l.ConsumeEcho("hello") {
		t.Fatal("first echo of a pending message not consumed")
	}
	if l.ConsumeEcho("hello") {
		t.Fatal("echo consumed twice; a second identical broadcast must display")
	}
}

func TestChatLog_ConsumeEchoExpires(t *testing.T) {
	l := NewChatLog(5 * time.Second)

	now := time.Now()
	l.now = func() time.Time { return now }
	l.AppendLocalEcho("hello")

	l.now = func() time.Time { return now.Add(6 * time.Second) }
	if l.ConsumeEcho("hello") {
		t.Fatal("echo matched outside the window")
	}
}

func TestChatLog_ConsumeEchoDistinctBodies(t *testing.T) {
	l := NewChatLog(5 * time.Second)
	l.AppendLocalEcho("one")
	l.AppendLocalEcho("two")

	if l.ConsumeEcho("three") {
		t.Fatal("matched a body that was never sent")
	}
	if !l.ConsumeEcho("two") {
		t.Fatal("pending body not matched")
	}
	if !l.ConsumeEcho("one") {
		t.Fatal("earlier pending body lost")
	}
}

func TestChatLog_AppendOnly(t *testing.T) {
	l := NewChatLog(5 * time.Second)
	l.AppendRemote("Alice", "hi", "2025-01-02T03:04:05Z")
	l.AppendLocalEcho("hello")
	l.AppendRemote(domain.SystemSender, "Bob joined the room", "2025-01-02T03:04:06Z")

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("log length = %d, want 3", len(entries))
	}

	// Mutating the returned slice must not disturb displayed state.
	entries[0].Body = "tampered"
	if l.Entries()[0].Body != "hi" {
		t.Error("Entries() exposes internal storage")
	}

	order := []string{"Alice", domain.LocalSender, domain.SystemSender}
	for i, want := range order {
		if l.Entries()[i].Sender != want {
			t.Errorf("entry[%d].Sender = %q, want %q", i, l.Entries()[i].Sender, want)
		}
	}
}

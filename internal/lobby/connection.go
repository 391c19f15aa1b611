package lobby

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrConnClosed is returned by writes after Close.
var ErrConnClosed = fmt.Errorf("connection is closed")

// Conn wraps one websocket connection to a room. Writes are serialized
// behind a mutex; reads happen from the session's single reader
// goroutine. Close is idempotent.
type Conn struct {
	ws     *websocket.Conn
	mu     sync.Mutex
	closed bool
}

// WSURL derives the room endpoint from the server's http(s) origin.
func WSURL(baseURL, roomID string) string {
	wsBase := baseURL
	if after, ok := strings.CutPrefix(baseURL, "https://"); ok {
		wsBase = "wss://" + after
	} else if after, ok := strings.CutPrefix(baseURL, "http://"); ok {
		wsBase = "ws://" + after
	}

	return fmt.Sprintf("%s/ws?action=join&room_id=%s", wsBase, url.QueryEscape(roomID))
}

// Open dials the room endpoint. The handshake timeout is the one
// hardening deviation from the protocol's "wait forever" default.
func Open(ctx context.Context, baseURL, roomID string, handshakeTimeout time.Duration) (*Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	ws, _, err := dialer.DialContext(ctx, WSURL(baseURL, roomID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to room %s: %w", roomID, err)
	}

	return &Conn{ws: ws}, nil
}

// WriteFrame sends one UTF-8 JSON text frame. Fire-and-forget: there is
// no delivery confirmation beyond the write itself.
func (c *Conn) WriteFrame(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	return c.ws.WriteMessage(websocket.TextMessage, frame)
}

// ReadFrame blocks for the next inbound frame.
func (c *Conn) ReadFrame() ([]byte, error) {
	_, frame, err := c.ws.ReadMessage()
	return frame, err
}

// Close performs the clean shutdown: a normal-closure control frame,
// then the underlying close. Safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	deadline := time.Now().Add(time.Second)
	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		deadline,
	)
	return c.ws.Close()
}

// IsCleanClose reports whether a read error represents an intentional
// normal closure rather than a transport fault.
func IsCleanClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure)
}

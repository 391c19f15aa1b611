package lobby

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// testServer is a minimal in-process lobby server speaking the wire
// contract: join via /ws?action=join&room_id=..., player_list snapshots
// on every membership or readiness change, broadcast relay with sender
// stamping, and double-encoded content throughout. Display names come
// from the name query parameter instead of a login session.
type testServer struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	clients  []*testClient
	nextName string
}

// setNextName assigns the display name the next joiner will get, the
// way the real server derives it from the login session.
func (ts *testServer) setNextName(name string) {
	ts.mu.Lock()
	ts.nextName = name
	ts.mu.Unlock()
}

type testClient struct {
	conn  *websocket.Conn
	name  string
	ready bool

	writeMu sync.Mutex
}

type testEnvelope struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id,omitempty"`
	Sender    string          `json:"sender,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{t: t}

	r := chi.NewRouter()
	r.Get("/ws", ts.handleWS)

	ts.srv = httptest.NewServer(r)
	t.Cleanup(func() {
		ts.srv.Close()
	})

	return ts
}

func (ts *testServer) baseURL() string {
	return ts.srv.URL
}

func (ts *testServer) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") != "join" {
		http.Error(w, "invalid action", http.StatusBadRequest)
		return
	}

	conn, err := testUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	ts.mu.Lock()
	name := ts.nextName
	ts.nextName = ""
	if name == "" {
		name = fmt.Sprintf("Guest-%d", time.Now().UnixNano())
	}
	c := &testClient{conn: conn, name: name}
	ts.clients = append(ts.clients, c)
	ts.mu.Unlock()

	ts.broadcastPlayerList()
	ts.broadcastNotice(name + " joined the room")

	go ts.readPump(c)
}

func (ts *testServer) readPump(c *testClient) {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			ts.drop(c)
			return
		}

		var env testEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}

		switch env.Type {
		case "broadcast":
			out := testEnvelope{
				Type:      "broadcast",
				Sender:    c.name,
				Content:   env.Content,
				Timestamp: time.Now().Format(time.RFC3339),
			}
			ts.broadcast(out)

		case "ready_toggle":
			ts.mu.Lock()
			c.ready = !c.ready
			ts.mu.Unlock()
			ts.broadcastPlayerList()
		}
	}
}

func (ts *testServer) drop(c *testClient) {
	ts.mu.Lock()
	for i, cl := range ts.clients {
		if cl == c {
			ts.clients = append(ts.clients[:i], ts.clients[i+1:]...)
			break
		}
	}
	ts.mu.Unlock()

	_ = c.conn.Close()
	ts.broadcastPlayerList()
	ts.broadcastNotice(c.name + " left the room")
}

func (ts *testServer) broadcastPlayerList() {
	type player struct {
		Name  string `json:"name"`
		Ready bool   `json:"ready"`
	}

	ts.mu.Lock()
	players := make([]player, 0, len(ts.clients))
	for _, c := range ts.clients {
		players = append(players, player{Name: c.name, Ready: c.ready})
	}
	ts.mu.Unlock()

	ts.broadcast(testEnvelope{
		Type:      "player_list",
		Content:   nest(ts.t, players),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (ts *testServer) broadcastNotice(text string) {
	ts.broadcast(testEnvelope{
		Type:      "string",
		Sender:    "server",
		Content:   nest(ts.t, text),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (ts *testServer) broadcast(env testEnvelope) {
	frame, err := json.Marshal(env)
	if err != nil {
		ts.t.Fatalf("marshal broadcast: %v", err)
	}
	ts.injectRaw(frame)
}

// injectRaw writes an arbitrary text frame to every connected client.
// Tests use it to deliver malformed or hand-built frames.
func (ts *testServer) injectRaw(frame []byte) {
	ts.mu.Lock()
	clients := append([]*testClient(nil), ts.clients...)
	ts.mu.Unlock()

	for _, c := range clients {
		c.writeMu.Lock()
		_ = c.conn.WriteMessage(websocket.TextMessage, frame)
		c.writeMu.Unlock()
	}
}

// closeClean performs a normal closure handshake with every client.
func (ts *testServer) closeClean() {
	ts.mu.Lock()
	clients := append([]*testClient(nil), ts.clients...)
	ts.clients = nil
	ts.mu.Unlock()

	for _, c := range clients {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "room closed"),
			time.Now().Add(time.Second),
		)
		c.writeMu.Unlock()
	}
}

// closeAbruptly drops the TCP connections without a close frame.
func (ts *testServer) closeAbruptly() {
	ts.mu.Lock()
	clients := append([]*testClient(nil), ts.clients...)
	ts.clients = nil
	ts.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
}

// nest JSON-encodes v, then encodes the resulting document again as a
// JSON string, matching the server's double-encoded content fields.
func nest(t *testing.T, v any) json.RawMessage {
	t.Helper()

	inner, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("nest inner marshal: %v", err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		t.Fatalf("nest outer marshal: %v", err)
	}
	return outer
}

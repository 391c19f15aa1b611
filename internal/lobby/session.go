package lobby

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hilthontt/lobbycli/internal/domain"
	"github.com/hilthontt/lobbycli/internal/infrastructure/logging"
	"github.com/hilthontt/lobbycli/internal/protocol"
)

var ErrNotConnected = errors.New("not connected to the room")

// Options configures a session. SelfName is the display name the server
// knows us by (from the identity endpoint); it drives echo suppression.
type Options struct {
	BaseURL          string
	RoomID           string
	SelfName         string
	HandshakeTimeout time.Duration
	EchoWindow       time.Duration
	Logger           logging.Logger
}

// Session ties the connection, codec, roster and chat log together for
// one room membership. It is single-use: once the status leaves
// connected it never goes back, and rejoining a room means a new Join.
//
// One goroutine (the read loop) processes inbound frames strictly in
// arrival order. User intents arrive from the consumer's goroutine, so
// shared state is guarded by a mutex, but there is never more than one
// writer per structure at a time.
type Session struct {
	roomID   string
	selfName string
	logger   logging.Logger

	conn   *Conn
	roster *Roster
	log    *ChatLog

	events chan Event

	mu      sync.Mutex
	status  Status
	leaving bool
	done    bool
}

// Join opens the room's connection and starts the read loop. The
// returned session is already connected; a dial failure is returned as
// an error and leaves nothing behind.
func Join(ctx context.Context, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	log.Info(logging.Connection, logging.Dial, "joining room", map[logging.ExtraKey]any{
		logging.RoomID: opts.RoomID,
	})

	conn, err := Open(ctx, opts.BaseURL, opts.RoomID, opts.HandshakeTimeout)
	if err != nil {
		log.Error(logging.Connection, logging.Dial, "dial failed", map[logging.ExtraKey]any{
			logging.RoomID:       opts.RoomID,
			logging.ErrorMessage: err.Error(),
		})
		return nil, err
	}

	s := &Session{
		roomID:   opts.RoomID,
		selfName: opts.SelfName,
		logger:   log,
		conn:     conn,
		roster:   NewRoster(),
		log:      NewChatLog(opts.EchoWindow),
		events:   make(chan Event, 128),
		status:   StatusConnected,
	}

	s.emit(StatusChanged{Status: StatusConnected})

	go s.readLoop()
	return s, nil
}

// Events delivers session events in processing order. The channel is
// closed after the terminal StatusChanged.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) RoomID() string {
	return s.roomID
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CanStart evaluates the start gate against the current state.
func (s *Session) CanStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canStartLocked()
}

func (s *Session) canStartLocked() bool {
	return CanStart(s.roster.LocalReady(), s.roster.participants, s.status)
}

// Participants returns the roster as of the last snapshot.
func (s *Session) Participants() []domain.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Participants()
}

// Entries returns the chat log so far.
func (s *Session) Entries() []domain.ChatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries()
}

func (s *Session) LocalReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.LocalReady()
}

// SendChat appends the local echo and transmits the broadcast frame.
// While not connected the send is rejected outright: no frame leaves
// and no log entry appears.
func (s *Session) SendChat(body string) error {
	s.mu.Lock()
	if s.status != StatusConnected {
		s.mu.Unlock()
		return ErrNotConnected
	}

	entry := s.log.AppendLocalEcho(body)
	s.emitLocked(ChatAppended{Entry: entry, CanStart: s.canStartLocked()})
	s.mu.Unlock()

	frame, err := protocol.EncodeChat(s.roomID, body)
	if err != nil {
		return err
	}
	if err := s.conn.WriteFrame(frame); err != nil {
		// Fire-and-forget: the read loop will surface the lost
		// connection. The echo stays: it was displayed, and displayed
		// state is never retracted.
		s.logger.Warn(logging.Connection, logging.WriteLoop, "chat send failed", map[logging.ExtraKey]any{
			logging.RoomID:       s.roomID,
			logging.ErrorMessage: err.Error(),
		})
	}
	return nil
}

// ToggleReady flips the local ready intent optimistically and announces
// it to the room.
func (s *Session) ToggleReady() error {
	s.mu.Lock()
	if s.status != StatusConnected {
		s.mu.Unlock()
		return ErrNotConnected
	}

	ready := !s.roster.LocalReady()
	s.roster.SetLocalReady(ready)
	s.emitLocked(RosterUpdated{
		Participants: s.roster.Participants(),
		LocalReady:   ready,
		CanStart:     s.canStartLocked(),
	})
	s.mu.Unlock()

	frame, err := protocol.EncodeReadyToggle(s.roomID, ready)
	if err != nil {
		return err
	}
	if err := s.conn.WriteFrame(frame); err != nil {
		s.logger.Warn(logging.Connection, logging.WriteLoop, "ready toggle send failed", map[logging.ExtraKey]any{
			logging.RoomID:       s.roomID,
			logging.ErrorMessage: err.Error(),
		})
	}
	return nil
}

// Leave performs the clean shutdown. Idempotent; the terminal event
// arrives on the events channel once the read loop winds down.
func (s *Session) Leave() {
	s.mu.Lock()
	if s.leaving {
		s.mu.Unlock()
		return
	}
	s.leaving = true
	s.mu.Unlock()

	s.logger.Info(logging.Connection, logging.Closure, "leaving room", map[logging.ExtraKey]any{
		logging.RoomID: s.roomID,
	})
	_ = s.conn.Close()
}

func (s *Session) readLoop() {
	for {
		frame, err := s.conn.ReadFrame()
		if err != nil {
			s.finish(err)
			return
		}
		s.dispatch(frame)
	}
}

// dispatch routes one decoded frame into the roster or the chat log.
// Malformed or unrecognized frames are logged and dropped; they never
// disturb previously displayed state.
func (s *Session) dispatch(frame []byte) {
	ev, err := protocol.Decode(frame)
	if err != nil {
		s.logger.Warn(logging.Protocol, logging.Decode, "dropping frame", map[logging.ExtraKey]any{
			logging.RoomID:       s.roomID,
			logging.RawFrame:     string(frame),
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case protocol.RosterEvent:
		s.roster.ApplySnapshot(e.Participants)
		s.emitLocked(RosterUpdated{
			Participants: s.roster.Participants(),
			LocalReady:   s.roster.LocalReady(),
			CanStart:     s.canStartLocked(),
		})

	case protocol.ChatEvent:
		if e.Sender == s.selfName && s.log.ConsumeEcho(e.Body) {
			return
		}
		entry := s.log.AppendRemote(e.Sender, e.Body, e.Timestamp)
		s.emitLocked(ChatAppended{Entry: entry, CanStart: s.canStartLocked()})

	case protocol.NoticeEvent:
		entry := s.log.AppendRemote(domain.SystemSender, e.Body, e.Timestamp)
		s.emitLocked(ChatAppended{Entry: entry, CanStart: s.canStartLocked()})
	}
}

// finish classifies the termination and emits the terminal status. A
// locally initiated leave or a remote normal closure ends quietly as
// disconnected; anything else is a fault: status error plus the
// one-shot connection-lost signal.
func (s *Session) finish(err error) {
	_ = s.conn.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	var terminal StatusChanged
	switch {
	case s.leaving:
		s.status = StatusDisconnected
		terminal = StatusChanged{Status: StatusDisconnected}
	case IsCleanClose(err):
		s.status = StatusDisconnected
		terminal = StatusChanged{Status: StatusDisconnected}
	default:
		s.status = StatusError
		terminal = StatusChanged{Status: StatusError, ConnectionLost: true}
		s.logger.Error(logging.Connection, logging.ReadLoop, "connection lost", map[logging.ExtraKey]any{
			logging.RoomID:       s.roomID,
			logging.ErrorMessage: err.Error(),
		})
	}

	// Gate collapses with the connection; a stale roster is never
	// presented as live.
	terminal.CanStart = s.canStartLocked()
	s.emitTerminalLocked(terminal)

	s.done = true
	close(s.events)
}

func (s *Session) emit(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitLocked(ev)
}

func (s *Session) emitLocked(ev Event) {
	if s.done {
		return
	}
	select {
	case s.events <- ev:
	default:
		// A consumer that stopped draining loses events rather than
		// wedging the read loop.
		s.logger.Warn(logging.General, logging.ReadLoop, "event buffer full, dropping event", nil)
	}
}

// emitTerminalLocked always enqueues the event, evicting the oldest
// queued events if the buffer is full. The terminal StatusChanged is
// never dropped: however far behind a consumer is, it observes the
// termination before the channel closes.
func (s *Session) emitTerminalLocked(ev Event) {
	if s.done {
		return
	}
	for {
		select {
		case s.events <- ev:
			return
		default:
		}
		select {
		case <-s.events:
			s.logger.Warn(logging.General, logging.ReadLoop, "event buffer full, evicting for terminal event", nil)
		default:
		}
	}
}

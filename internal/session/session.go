// Package session implements the per-connection state machine: Pending,
// AI, and GUI roles, each connection's reader/writer tasks, bounded
// in-memory queues, and the soft write timeout. World mutation never
// happens here — sessions only ship parsed lines inward and formatted
// lines outward.
package session

import (
	"bufio"
	"log/slog"
	"net"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/protocol"
)

// Role is the connection's current position in the Pending -> {AI, GUI}
// state machine.
type Role int32

const (
	Pending Role = iota
	AI
	GUI
)

// MaxLineBytes is the inbound line-length cap; lines longer than this are
// dropped and answered with Ko, per the error-handling policy.
const MaxLineBytes = 8193

// WriteTimeout is the soft per-response write deadline; exceeding it tears
// the connection down as dead.
const WriteTimeout = 5 * time.Second

// outboundCapacity bounds each connection's outbound queue. Observer
// mirrors use a best-effort try-send against this bound and drop on
// overflow rather than block the core loop.
const outboundCapacity = 256

// InboundKind classifies one parsed inbound line by the session's role at
// the time it was read.
type InboundKind int

const (
	InboundLogin InboundKind = iota
	InboundAI
	InboundGUI
	InboundLineTooLong
	InboundDisconnect
)

// Inbound is one event a session's reader delivers to the core loop.
type Inbound struct {
	SessionId ids.Id
	Kind      InboundKind
	TeamName  string
	AI        protocol.AICommand
	GUI       protocol.GUICommand
	GUIOk     bool
}

// Session is one TCP connection and its role in the FSM. Role transitions
// happen on the engine's main loop while the reader goroutine reads it
// concurrently, so it is stored atomically rather than as a plain field.
type Session struct {
	Id   ids.Id
	role atomic.Int32

	conn     net.Conn
	outbound chan string
	closed   chan struct{}
}

// New wraps an accepted connection as a Pending session. It writes nothing;
// the greeting line is queued by Listener.Serve.
func New(id ids.Id, conn net.Conn) *Session {
	s := &Session{
		Id:       id,
		conn:     conn,
		outbound: make(chan string, outboundCapacity),
		closed:   make(chan struct{}),
	}
	s.role.Store(int32(Pending))
	return s
}

// Role returns the session's current FSM role.
func (s *Session) Role() Role {
	return Role(s.role.Load())
}

// SetRole transitions the session to a new FSM role. Called only from the
// engine's main loop in response to a login decision.
func (s *Session) SetRole(r Role) {
	s.role.Store(int32(r))
}

// Send queues a line for delivery to the client. Returns false if the
// outbound queue is full (best-effort, non-blocking — used for high-rate
// observer mirrors, which may drop under overflow) or the session is
// already closed.
func (s *Session) Send(line string) bool {
	select {
	case s.outbound <- line:
		return true
	case <-s.closed:
		return false
	default:
		slog.Warn("session outbound queue overflow, dropping message", "session_id", s.Id)
		return false
	}
}

// SendBlocking queues a line, blocking until there is room or the session
// closes. Used for replies the protocol requires the actor to receive
// (ok/ko/structured data), as opposed to best-effort observer mirrors.
func (s *Session) SendBlocking(line string) bool {
	select {
	case s.outbound <- line:
		return true
	case <-s.closed:
		return false
	}
}

// Close tears the connection down and unblocks any pending Send calls.
func (s *Session) Close() {
	select {
	case <-s.closed:
		return
	default:
		close(s.closed)
		s.conn.Close()
	}
}

// RunReader reads lines from the connection, classifies them by the
// session's current role, and delivers them to inbound. It returns when
// the connection closes, after delivering a final InboundDisconnect.
func (s *Session) RunReader(inbound chan<- Inbound) {
	defer func() {
		select {
		case inbound <- Inbound{SessionId: s.Id, Kind: InboundDisconnect}:
		case <-s.closed:
		}
		s.Close()
	}()

	reader := bufio.NewReaderSize(s.conn, MaxLineBytes+1)
	for {
		line, overflowed, err := readLine(reader)
		if err != nil {
			return
		}
		if overflowed || !utf8.ValidString(line) {
			select {
			case inbound <- Inbound{SessionId: s.Id, Kind: InboundLineTooLong}:
			case <-s.closed:
				return
			}
			continue
		}
		ev := s.classify(line)
		select {
		case inbound <- ev:
		case <-s.closed:
			return
		}
	}
}

// readLine reads one '\n'-terminated line, bounded by the reader's buffer
// size (MaxLineBytes+1) so a client that never sends a newline cannot grow
// memory unbounded. overflowed is true when a line exceeded the cap; the
// remainder up to the next newline is discarded before returning so the
// stream re-synchronizes on the following line.
func readLine(r *bufio.Reader) (line string, overflowed bool, err error) {
	raw, err := r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Discard the rest of the oversized line up to (and including) its
		// newline so the next read starts clean on the following line.
		for err == bufio.ErrBufferFull {
			_, err = r.ReadSlice('\n')
		}
		if err != nil {
			return "", true, err
		}
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	s := string(raw)
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s, false, nil
}

func (s *Session) classify(line string) Inbound {
	switch s.Role() {
	case Pending:
		return Inbound{SessionId: s.Id, Kind: InboundLogin, TeamName: line}
	case AI:
		return Inbound{SessionId: s.Id, Kind: InboundAI, AI: protocol.ParseAILine(line)}
	case GUI:
		cmd, ok := protocol.ParseGUILine(line)
		return Inbound{SessionId: s.Id, Kind: InboundGUI, GUI: cmd, GUIOk: ok}
	default:
		return Inbound{SessionId: s.Id, Kind: InboundLineTooLong}
	}
}

// RunWriter drains the outbound queue to the connection, enforcing the
// soft write timeout. It returns (and closes the session) on any write
// error or timeout.
func (s *Session) RunWriter() {
	for {
		select {
		case line, ok := <-s.outbound:
			if !ok {
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if _, err := s.conn.Write([]byte(line)); err != nil {
				slog.Warn("session write failed, tearing down", "session_id", s.Id, "error", err)
				s.Close()
				return
			}
		case <-s.closed:
			return
		}
	}
}

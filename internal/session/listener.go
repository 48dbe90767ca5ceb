package session

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/time/rate"

	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/protocol"
)

// acceptBurst and acceptRate bound how fast the listener hands new
// connections to the core loop, guarding against an accept storm starving
// the tick loop of CPU.
const (
	acceptRate  = 200 // connections/sec sustained
	acceptBurst = 50
)

// Listener accepts TCP connections, rate-limits how fast they're handed
// off, and spawns each accepted connection's reader/writer tasks.
type Listener struct {
	ln      net.Listener
	limiter *rate.Limiter
	ids     *ids.Generator
	Accept  chan *Session
	Inbound chan Inbound
}

// Listen opens a TCP listener on addr.
func Listen(addr string, idGen *ids.Generator, inboundCapacity int) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("session: listen %s: %w", addr, err)
	}
	return &Listener{
		ln:      ln,
		limiter: rate.NewLimiter(rate.Limit(acceptRate), acceptBurst),
		ids:     idGen,
		Accept:  make(chan *Session),
		Inbound: make(chan Inbound, inboundCapacity),
	}, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops the listener from accepting further connections.
func (l *Listener) Close() error { return l.ln.Close() }

// Serve accepts connections until ctx is cancelled or the listener closes,
// pushing each onto Accept and spawning its reader/writer goroutines.
func (l *Listener) Serve(ctx context.Context) {
	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return
		}
		conn, err := l.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				slog.Warn("accept failed", "error", err)
				continue
			}
		}
		sess := New(l.ids.Next(), conn)
		go sess.RunWriter()
		go sess.RunReader(l.Inbound)
		sess.SendBlocking(protocol.Welcome())
		select {
		case l.Accept <- sess:
		case <-ctx.Done():
			sess.Close()
			return
		}
	}
}

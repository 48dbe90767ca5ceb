package engine

import (
	"bufio"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/talgya/citadel/internal/config"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/player"
	"github.com/talgya/citadel/internal/protocol"
	"github.com/talgya/citadel/internal/resources"
	"github.com/talgya/citadel/internal/session"
)

func newTestEngine(t *testing.T) (*Engine, *ids.Registry) {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 5, 5
	cfg.Teams = []string{"alpha"}
	cfg.ClientsPerTeam = 1
	cfg.Seed = 7

	idReg := ids.NewRegistry()
	listener := &session.Listener{}
	e := New(cfg, listener, nil, idReg)
	return e, idReg
}

func connectSession(t *testing.T, e *Engine, idReg *ids.Registry) (*session.Session, net.Conn, *bufio.Reader) {
	t.Helper()
	server, client := net.Pipe()
	sess := session.New(idReg.Clients.Next(), server)
	go sess.RunWriter()
	e.handleAccept(sess)
	return sess, client, bufio.NewReader(client)
}

func TestLoginAssignsPlayerAndReplies(t *testing.T) {
	e, idReg := newTestEngine(t)
	sess, client, r := connectSession(t, e, idReg)
	defer client.Close()

	e.handleLogin(sess.Id, "alpha")

	remaining, err := r.ReadString('\n')
	if err != nil || remaining != "0\n" {
		t.Fatalf("expected remaining-eggs line '0\\n', got %q err=%v", remaining, err)
	}
	dims, err := r.ReadString('\n')
	if err != nil || dims != "5 5\n" {
		t.Fatalf("expected dims line '5 5\\n', got %q err=%v", dims, err)
	}

	if len(e.ai) != 1 {
		t.Fatalf("expected 1 live player, got %d", len(e.ai))
	}
}

func TestLoginUnknownTeamRepliesKo(t *testing.T) {
	e, idReg := newTestEngine(t)
	sess, client, r := connectSession(t, e, idReg)
	defer client.Close()

	e.handleLogin(sess.Id, "nosuchteam")

	line, err := r.ReadString('\n')
	if err != nil || line != "ko\n" {
		t.Fatalf("expected ko, got %q err=%v", line, err)
	}
	if _, ok := e.pending[sess.Id]; !ok {
		t.Fatal("session should remain pending after a failed login")
	}
}

func TestGraphicLoginBecomesObserver(t *testing.T) {
	e, idReg := newTestEngine(t)
	sess, client, _ := connectSession(t, e, idReg)
	defer client.Close()

	e.handleLogin(sess.Id, "GRAPHIC")

	if _, ok := e.observers[sess.Id]; !ok {
		t.Fatal("expected GRAPHIC login to register as an observer")
	}
	if sess.Role() != session.GUI {
		t.Fatalf("expected session role GUI, got %v", sess.Role())
	}
}

func TestForwardMovesPlayerAndReplies(t *testing.T) {
	e, idReg := newTestEngine(t)
	sess, client, r := connectSession(t, e, idReg)
	defer client.Close()

	e.handleLogin(sess.Id, "alpha")
	r.ReadString('\n')
	r.ReadString('\n')

	c := e.ai[sess.Id]
	before := c.player.Position

	e.handleAIInbound(sess.Id, protocol.AICommand{Verb: protocol.VerbForward})
	for i := 0; i < int(protocol.VerbForward.Cost()); i++ {
		for _, entry := range e.sched.Tick() {
			e.applyEntry(entry)
		}
	}

	ok, err := r.ReadString('\n')
	if err != nil || ok != "ok\n" {
		t.Fatalf("expected ok after Forward, got %q err=%v", ok, err)
	}
	if c.player.Position == before {
		t.Fatalf("expected position to change after Forward from %+v", before)
	}
}

func TestIncantationLevelOneSoloSucceeds(t *testing.T) {
	e, idReg := newTestEngine(t)

	// Pre-fill the grid to its steady-state refill targets so the tick loop
	// below never triggers a resource spawn — otherwise its unsolicited bct
	// fanout would interleave with the incantation messages this test
	// asserts on. Also push the periodic pin sweep's clock forward so its
	// once-per-second broadcast doesn't fire mid-test.
	e.grid.Refill(e.src)
	e.lastPinBroadcast = time.Now()

	actorSess, actorClient, actorR := connectSession(t, e, idReg)
	defer actorClient.Close()
	e.handleLogin(actorSess.Id, "alpha")
	actorR.ReadString('\n') // remaining eggs
	actorR.ReadString('\n') // dims

	obsSess, obsClient, obsR := connectSession(t, e, idReg)
	defer obsClient.Close()
	e.handleLogin(obsSess.Id, "GRAPHIC")

	c := e.ai[actorSess.Id]
	p := c.player
	p.Inventory[resources.Food] = 3 // survive the 300-tick lockout
	e.grid.AddResource(p.Position, resources.Linemate, 1)

	e.handleAIInbound(actorSess.Id, protocol.AICommand{Verb: protocol.VerbIncantation})
	e.handleTick() // applies the zero-cost Incantation event: begins the ritual

	underway, err := actorR.ReadString('\n')
	if err != nil || underway != "Elevation underway\n" {
		t.Fatalf("expected 'Elevation underway', got %q err=%v", underway, err)
	}

	wantPic := fmt.Sprintf("pic %d %d 1 #%d\n", p.Position.X, p.Position.Y, p.Id)
	pic, err := obsR.ReadString('\n')
	if err != nil || pic != wantPic {
		t.Fatalf("expected %q, got %q err=%v", wantPic, pic, err)
	}

	for i := 0; i < player.IncantationDuration; i++ {
		e.handleTick()
	}

	success, err := actorR.ReadString('\n')
	if err != nil || success != "Current level: 2\n" {
		t.Fatalf("expected 'Current level: 2', got %q err=%v", success, err)
	}

	// Consuming the ritual's linemate mirrors the cell to observers before
	// the resolution itself is announced.
	wantBct := protocol.Bct(p.Position.X, p.Position.Y, e.grid.At(p.Position).Resources)
	bct, err := obsR.ReadString('\n')
	if err != nil || bct != wantBct {
		t.Fatalf("expected %q, got %q err=%v", wantBct, bct, err)
	}

	wantPie := fmt.Sprintf("pie %d %d 1\n", p.Position.X, p.Position.Y)
	pie, err := obsR.ReadString('\n')
	if err != nil || pie != wantPie {
		t.Fatalf("expected %q, got %q err=%v", wantPie, pie, err)
	}

	wantPlv := fmt.Sprintf("plv #%d 2\n", p.Id)
	plv, err := obsR.ReadString('\n')
	if err != nil || plv != wantPlv {
		t.Fatalf("expected %q, got %q err=%v", wantPlv, plv, err)
	}

	if p.Elevation != 2 {
		t.Fatalf("expected elevation 2, got %d", p.Elevation)
	}
}

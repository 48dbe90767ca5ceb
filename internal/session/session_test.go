package session

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/talgya/citadel/internal/protocol"
)

func TestClassifyByRole(t *testing.T) {
	server, _ := net.Pipe()
	defer server.Close()
	s := New(1, server)

	s.SetRole(Pending)
	if ev := s.classify("alpha"); ev.Kind != InboundLogin || ev.TeamName != "alpha" {
		t.Fatalf("expected login inbound, got %+v", ev)
	}

	s.SetRole(AI)
	if ev := s.classify("Forward"); ev.Kind != InboundAI || ev.AI.Verb != protocol.VerbForward {
		t.Fatalf("expected AI forward inbound, got %+v", ev)
	}

	s.SetRole(GUI)
	if ev := s.classify("msz"); ev.Kind != InboundGUI || !ev.GUIOk || ev.GUI.Verb != protocol.GUIMsz {
		t.Fatalf("expected GUI msz inbound, got %+v", ev)
	}
}

func TestRunReaderDeliversLinesAndDisconnect(t *testing.T) {
	server, client := net.Pipe()
	s := New(1, server)
	s.SetRole(AI)
	inbound := make(chan Inbound, 8)
	go s.RunReader(inbound)

	go func() {
		client.Write([]byte("Forward\n"))
		time.Sleep(10 * time.Millisecond)
		client.Close()
	}()

	first := <-inbound
	if first.Kind != InboundAI || first.AI.Verb != protocol.VerbForward {
		t.Fatalf("expected Forward inbound, got %+v", first)
	}
	second := <-inbound
	if second.Kind != InboundDisconnect {
		t.Fatalf("expected disconnect inbound after close, got %+v", second)
	}
}

func TestSendAndWriterDeliversToClient(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	s := New(1, server)
	go s.RunWriter()

	done := make(chan string, 1)
	go func() {
		r := bufio.NewReader(client)
		line, _ := r.ReadString('\n')
		done <- line
	}()

	if !s.SendBlocking("ok\n") {
		t.Fatal("expected send to succeed")
	}
	select {
	case got := <-done:
		if got != "ok\n" {
			t.Fatalf("expected client to receive ok, got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for client to receive line")
	}
	s.Close()
}

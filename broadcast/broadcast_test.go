package broadcast

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/wfunc/scrabbleserver/logger"
	"github.com/wfunc/scrabbleserver/network"
	"github.com/wfunc/scrabbleserver/session"
)

func TestMain(m *testing.M) {
	logger.InitDevelopment()
	os.Exit(m.Run())
}

// MockConnection counts delivered envelopes.
type MockConnection struct {
	Sent []*network.Envelope
}

func (m *MockConnection) Send(env *network.Envelope) error {
	m.Sent = append(m.Sent, env)
	return nil
}

func (m *MockConnection) ReadEnvelope() (*network.Envelope, error) { return nil, nil }
func (m *MockConnection) Close() error                             { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                     { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)      {}

func TestBroadcastToGame(t *testing.T) {
	manager := session.NewManager()
	b := NewSessionBroadcaster(manager)

	hostConn, joinerConn, otherConn := &MockConnection{}, &MockConnection{}, &MockConnection{}

	host := session.NewSession("s1", hostConn)
	host.Identify("alice", network.RoleHost, "game-1")
	joiner := session.NewSession("s2", joinerConn)
	joiner.Identify("bob", network.RoleJoiner, "game-1")
	other := session.NewSession("s3", otherConn)
	other.Identify("carol", network.RoleHost, "game-2")

	manager.Add(host)
	manager.Add(joiner)
	manager.Add(other)

	env := &network.Envelope{Type: network.MsgState, GameID: "game-1"}
	if err := b.BroadcastToGame("game-1", env); err != nil {
		t.Fatalf("BroadcastToGame failed: %v", err)
	}

	if len(hostConn.Sent) != 1 || len(joinerConn.Sent) != 1 {
		t.Error("Both members of the game should receive the broadcast")
	}
	if len(otherConn.Sent) != 0 {
		t.Error("Sessions in other games must not receive the broadcast")
	}
}

func TestSendToSession(t *testing.T) {
	manager := session.NewManager()
	b := NewSessionBroadcaster(manager)

	conn := &MockConnection{}
	s := session.NewSession("s1", conn)
	manager.Add(s)

	env := &network.Envelope{Type: network.MsgError}
	if err := b.SendToSession("s1", env); err != nil {
		t.Fatalf("SendToSession failed: %v", err)
	}
	if len(conn.Sent) != 1 {
		t.Errorf("Expected 1 delivery, got %d", len(conn.Sent))
	}

	if err := b.SendToSession("missing", env); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

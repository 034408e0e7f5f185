package broadcast

import (
	"net"
	"testing"

	"github.com/wfunc/maestro/network"
	"github.com/wfunc/maestro/session"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent []interface{}
}

func (m *MockConnection) Send(event interface{}) error {
	m.sent = append(m.sent, event)
	return nil
}
func (m *MockConnection) ReadCommand() (*network.Command, error) { return nil, nil }
func (m *MockConnection) Close() error                           { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                   { return &net.TCPAddr{} }

func setup() (*session.Manager, *RoomBroadcaster, map[string]*MockConnection) {
	sessions := session.NewManager()
	conns := make(map[string]*MockConnection)

	for id, roomID := range map[string]string{
		"a": "lobby",
		"b": "lobby",
		"c": "arena",
	} {
		conn := &MockConnection{}
		sess := session.NewSession(id, conn)
		sess.RoomID = roomID
		sessions.Add(sess)
		conns[id] = conn
	}

	return sessions, NewRoomBroadcaster(sessions), conns
}

func TestBroadcastToRoom_FansOutToRoomOnly(t *testing.T) {
	_, b, conns := setup()

	if err := b.BroadcastToRoom("lobby", network.NewCountdownEvent()); err != nil {
		t.Fatalf("BroadcastToRoom returned error: %v", err)
	}

	if len(conns["a"].sent) != 1 || len(conns["b"].sent) != 1 {
		t.Errorf("lobby sessions should each receive 1 event, got %d and %d",
			len(conns["a"].sent), len(conns["b"].sent))
	}
	if len(conns["c"].sent) != 0 {
		t.Errorf("arena session should receive nothing, got %d", len(conns["c"].sent))
	}
}

func TestBroadcastToRoom_UnknownRoomIsNoOp(t *testing.T) {
	_, b, conns := setup()

	if err := b.BroadcastToRoom("ghost-room", network.NewCountdownEvent()); err != nil {
		t.Fatalf("broadcast to a nonexistent room must be a safe no-op, got %v", err)
	}
	for id, conn := range conns {
		if len(conn.sent) != 0 {
			t.Errorf("session %s should receive nothing, got %d", id, len(conn.sent))
		}
	}
}

func TestSendToPlayer_Unicast(t *testing.T) {
	_, b, conns := setup()

	if err := b.SendToPlayer("lobby", "a", network.NewDeadEvent()); err != nil {
		t.Fatalf("SendToPlayer returned error: %v", err)
	}

	if len(conns["a"].sent) != 1 {
		t.Errorf("target session should receive 1 event, got %d", len(conns["a"].sent))
	}
	if len(conns["b"].sent) != 0 {
		t.Error("unicast must not reach the rest of the room")
	}
}

func TestSendToPlayer_WrongRoom(t *testing.T) {
	_, b, _ := setup()

	if err := b.SendToPlayer("arena", "a", network.NewDeadEvent()); err != ErrPlayerNotFound {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
	if err := b.SendToPlayer("lobby", "nobody", network.NewDeadEvent()); err != ErrPlayerNotFound {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}

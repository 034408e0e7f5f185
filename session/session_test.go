package session

import (
	"net"
	"testing"

	"github.com/wfunc/maestro/network"
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

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	// Test Add
	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	// Test Get
	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	// Test Remove
	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByRoomID(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.RoomID = "lobby"

	sess2 := NewSession("session2", &MockConnection{})
	sess2.RoomID = "arena"

	sess3 := NewSession("session3", &MockConnection{})
	sess3.RoomID = "lobby"

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	lobbySessions := manager.GetByRoomID("lobby")
	if len(lobbySessions) != 2 {
		t.Errorf("Expected 2 sessions in room lobby, got %d", len(lobbySessions))
	}

	arenaSessions := manager.GetByRoomID("arena")
	if len(arenaSessions) != 1 {
		t.Errorf("Expected 1 session in room arena, got %d", len(arenaSessions))
	}

	noSessions := manager.GetByRoomID("nowhere")
	if len(noSessions) != 0 {
		t.Errorf("Expected 0 sessions in an unknown room, got %d", len(noSessions))
	}
}

func TestSession_SendGoesToConnection(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("test_session", conn)

	event := map[string]string{"type": "countdown"}
	if err := sess.Send(event); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if len(conn.sent) != 1 {
		t.Fatalf("Expected 1 sent event, got %d", len(conn.sent))
	}
}

// room/manager.go
package room

import "sync"

// Manager 管理所有房间：按 id 惰性创建，保证同一 id 同时至多一个
// 房间实例。
type Manager struct {
	rooms       map[string]*Room
	mutex       sync.RWMutex
	broadcaster Broadcaster
	countHook   func(count int)
}

func NewManager(broadcaster Broadcaster) *Manager {
	return &Manager{
		rooms:       make(map[string]*Room),
		broadcaster: broadcaster,
	}
}

// SetCountHook installs an observer called with the room count after every
// create or remove. Used to keep the active-rooms gauge current.
func (m *Manager) SetCountHook(hook func(count int)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.countHook = hook
}

// Resolve returns the room for id, creating it if absent. Create-if-absent
// is atomic under the manager lock, so concurrent joins to a never-seen id
// end up in the same instance.
func (m *Manager) Resolve(id string) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[id]; exists {
		return room
	}
	room := NewRoom(id, m.broadcaster, m.detach)
	m.rooms[id] = room
	if m.countHook != nil {
		m.countHook(len(m.rooms))
	}
	return room
}

// Get looks a room up without creating it.
func (m *Manager) Get(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, exists := m.rooms[id]
	return room, exists
}

// Remove destroys a room from outside. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	m.mutex.Lock()
	room, exists := m.rooms[id]
	delete(m.rooms, id)
	if m.countHook != nil {
		m.countHook(len(m.rooms))
	}
	m.mutex.Unlock()

	if exists {
		room.Close()
	}
}

// detach drops the table entry for a room that destroyed itself. The room
// has already stopped its own scheduler.
func (m *Manager) detach(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, id)
	if m.countHook != nil {
		m.countHook(len(m.rooms))
	}
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

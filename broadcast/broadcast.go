// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/maestro/session"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
)

// 广播接口
type Broadcaster interface {
	BroadcastToRoom(roomID string, event interface{}) error
	SendToPlayer(roomID, playerID string, event interface{}) error
}

// RoomBroadcaster 把房间事件扇出到该房间的所有连接。它只读
// 玩家与连接的关联，从不修改。
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
	}
}

// BroadcastToRoom fans the event out to every session attached to the
// room. A room with no sessions (e.g. already destroyed) is a safe no-op.
func (b *RoomBroadcaster) BroadcastToRoom(roomID string, event interface{}) error {
	for _, s := range b.sessionManager.GetByRoomID(roomID) {
		if err := s.Send(event); err != nil {
			// 发送失败交给连接的读循环去收尾
			continue
		}
	}
	return nil
}

// SendToPlayer unicasts to a single player's session; the player id is the
// session id.
func (b *RoomBroadcaster) SendToPlayer(roomID, playerID string, event interface{}) error {
	s, exists := b.sessionManager.Get(playerID)
	if !exists || s.RoomID != roomID {
		return ErrPlayerNotFound
	}
	return s.Send(event)
}

package room

// Broadcaster defines the fan-out contract the room depends on but does
// not implement. Defined here to break the import cycle between room and
// broadcast.
type Broadcaster interface {
	BroadcastToRoom(roomID string, event interface{}) error
	SendToPlayer(roomID, playerID string, event interface{}) error
}

// state/interfaces.go
package state

import (
	"math/rand"
	"time"

	"github.com/wfunc/maestro/game"
	"github.com/wfunc/maestro/network"
)

// State ids, also the values reported on the wire-facing side.
const (
	IDWaiting    = "waiting"
	IDShowing    = "showing"
	IDPlayerTurn = "playerTurn"
	IDGameOver   = "gameOver"
)

// State 是房间状态机的一个状态。所有方法都在房间的串行化
// 保护下被调用，状态内部不需要再加锁。
type State interface {
	OnEnter()
	OnExit()
	GetID() string
	HandleCommand(player *game.Player, cmd *network.Command, at time.Time)
	OnPlayerLeft(player *game.Player)
}

// RoomContext defines what a room must expose to be driven by the game
// states. It exists to break the import cycle between room and state.
// Every method assumes the room's serialization is already held.
type RoomContext interface {
	GetID() string

	// player records, owned by the room
	Players() map[string]*game.Player
	AliveParticipants() []*game.Player
	ParticipantCount() int
	BeginGame()

	// round bookkeeping
	Turn() int
	AdvanceTurn()
	Sequence() []game.Direction
	SetSequence(seq []game.Direction)
	Anchor() (game.Anchor, bool)
	SetAnchor(anchor game.Anchor)
	ClearAnchor()
	Rand() *rand.Rand

	// outbound events
	Broadcast(event interface{})
	SendTo(playerID string, event interface{})
	BroadcastPlayers()

	// transitions and delayed work
	ChangeState(s State)
	Schedule(delay time.Duration, fn func()) int64
	ScheduleRepeat(delay, interval time.Duration, fn func()) int64
	Cancel(id int64)
	ResetGame()
	DestroySelf()
}

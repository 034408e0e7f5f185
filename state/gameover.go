// state/gameover.go
package state

import (
	"time"

	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/network"
)

// destroyDelay is how long a finished room lingers before it is torn
// down, giving clients time to show the result and players a chance to
// send reset.
const destroyDelay = 10000 * time.Millisecond

// GameOverState 终局状态：广播最终回合数，10 秒后销毁房间，
// 期间收到 reset 则取消销毁回到等待状态
type GameOverState struct {
	RoomStateBase
}

func NewGameOverState(room RoomContext) *GameOverState {
	return &GameOverState{
		RoomStateBase: RoomStateBase{
			ID:   IDGameOver,
			Room: room,
		},
	}
}

func (s *GameOverState) OnEnter() {
	logger.Log.Infof("room %s: game over at turn %d", s.Room.GetID(), s.Room.Turn())
	s.Room.Broadcast(network.NewGameOverEvent(s.Room.Turn()))
	s.Room.Schedule(destroyDelay, s.Room.DestroySelf)
}

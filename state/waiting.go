// state/waiting.go
package state

import (
	"time"

	"github.com/wfunc/maestro/game"
	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/network"
)

// startDelay is the countdown broadcast-then-delay before the first round.
const startDelay = 3000 * time.Millisecond

// WaitingState 等待状态：玩家加入并准备，全体准备后开局
type WaitingState struct {
	RoomStateBase
	startTimer int64
}

func NewWaitingState(room RoomContext) *WaitingState {
	return &WaitingState{
		RoomStateBase: RoomStateBase{
			ID:   IDWaiting,
			Room: room,
		},
	}
}

func (s *WaitingState) HandleCommand(player *game.Player, cmd *network.Command, at time.Time) {
	if cmd.Type != network.CmdReady || player == nil {
		return
	}

	player.Ready = true
	s.Room.BroadcastPlayers()
	s.maybeStart()
}

// OnPlayerLeft re-checks readiness: the leaver may have been the last
// unready player.
func (s *WaitingState) OnPlayerLeft(player *game.Player) {
	s.maybeStart()
}

func (s *WaitingState) maybeStart() {
	if s.startTimer != 0 {
		return
	}

	players := s.Room.Players()
	if len(players) == 0 {
		return
	}
	for _, p := range players {
		if !p.Ready {
			return
		}
	}

	logger.Log.Infof("room %s: all %d players ready, starting", s.Room.GetID(), len(players))
	s.Room.Broadcast(network.NewCountdownEvent())
	s.startTimer = s.Room.Schedule(startDelay, func() {
		s.Room.BeginGame()
		s.Room.ChangeState(NewShowingState(s.Room))
	})
}

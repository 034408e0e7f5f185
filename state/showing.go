// state/showing.go
package state

import (
	"time"

	"github.com/wfunc/maestro/game"
	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/network"
)

// showToTurnDelay is the pause between the last maestro move and the
// player turn.
const showToTurnDelay = 1500 * time.Millisecond

// ShowingState 展示状态：maestro 按节拍逐个播放本回合序列
type ShowingState struct {
	RoomStateBase
	playbackTimer int64
}

func NewShowingState(room RoomContext) *ShowingState {
	return &ShowingState{
		RoomStateBase: RoomStateBase{
			ID:   IDShowing,
			Room: room,
		},
	}
}

func (s *ShowingState) OnEnter() {
	room := s.Room
	turn := room.Turn()

	sequence := game.NewSequence(turn, room.Rand())
	room.SetSequence(sequence)
	room.Broadcast(network.NewNewTurnEvent(turn))
	logger.Log.Infof("room %s: turn %d, showing %d moves", room.GetID(), turn, len(sequence))

	interval := game.Interval(turn)
	index := 0
	s.playbackTimer = room.ScheduleRepeat(interval, interval, func() {
		room.Broadcast(network.NewMaestroMoveEvent(string(sequence[index]), index))
		index++
		if index >= len(sequence) {
			room.Cancel(s.playbackTimer)
			room.Schedule(showToTurnDelay, func() {
				room.ChangeState(NewPlayerTurnState(room))
			})
		}
	})
}

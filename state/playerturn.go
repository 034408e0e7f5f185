// state/playerturn.go
package state

import (
	"time"

	"github.com/wfunc/maestro/game"
	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/network"
)

const (
	countdownCadence = 700 * time.Millisecond
	armDelay         = 100 * time.Millisecond
	windowGrace      = 1000 * time.Millisecond
	winnerResetDelay = 3000 * time.Millisecond
	nextRoundDelay   = 2000 * time.Millisecond
)

// PlayerTurnState 玩家回合：3-2-1-GO 倒计时后打开输入窗口，
// 所有存活玩家同时按各自进度回放序列。输入判定只看 timingAnchor，
// 参考回放不影响判定。
type PlayerTurnState struct {
	RoomStateBase
	countdownTimer int64
	playbackTimer  int64
	resolved       bool
}

func NewPlayerTurnState(room RoomContext) *PlayerTurnState {
	return &PlayerTurnState{
		RoomStateBase: RoomStateBase{
			ID:   IDPlayerTurn,
			Room: room,
		},
	}
}

func (s *PlayerTurnState) OnEnter() {
	room := s.Room
	for _, p := range room.Players() {
		if p.Playing {
			p.BeginRound()
		}
	}

	sequence := room.Sequence()
	window := game.TimingWindow(room.Turn(), len(sequence))
	room.Broadcast(network.NewPlayerTurnEvent(directionStrings(sequence), window.Milliseconds()))

	// 3, 2, 1 at 700ms cadence, then GO carrying the first move
	room.Broadcast(network.NewPlayerCountdownEvent(3, ""))
	count := 2
	s.countdownTimer = room.ScheduleRepeat(countdownCadence, countdownCadence, func() {
		if count > 0 {
			room.Broadcast(network.NewPlayerCountdownEvent(count, ""))
			count--
			return
		}
		room.Cancel(s.countdownTimer)
		room.Broadcast(network.NewPlayerCountdownEvent(0, string(sequence[0])))
		room.Schedule(armDelay, s.arm)
	})
}

func (s *PlayerTurnState) OnExit() {
	s.Room.ClearAnchor()
}

// arm opens the input window. From here on acceptance is driven solely by
// the anchor; the reference playback below is display-only.
func (s *PlayerTurnState) arm() {
	room := s.Room
	sequence := room.Sequence()
	turn := room.Turn()
	interval := game.Interval(turn)

	room.SetAnchor(game.Anchor{Start: time.Now(), Interval: interval})

	// replay from index 1, index 0 was already shown with GO
	if len(sequence) > 1 {
		index := 1
		s.playbackTimer = room.ScheduleRepeat(interval, interval, func() {
			room.Broadcast(network.NewMaestroMoveEvent(string(sequence[index]), index))
			index++
			if index >= len(sequence) {
				room.Cancel(s.playbackTimer)
			}
		})
	}

	window := game.TimingWindow(turn, len(sequence))
	room.Schedule(window+windowGrace, s.expire)
}

func (s *PlayerTurnState) HandleCommand(player *game.Player, cmd *network.Command, at time.Time) {
	if cmd.Type != network.CmdInput || player == nil {
		return
	}
	dir, ok := game.ParseDirection(cmd.Dir)
	if !ok {
		return
	}
	s.handleInput(player, dir, at)
}

func (s *PlayerTurnState) handleInput(player *game.Player, dir game.Direction, at time.Time) {
	room := s.Room
	anchor, armed := room.Anchor()
	if !armed || s.resolved || !player.Alive() {
		return
	}

	sequence := room.Sequence()
	index := len(player.Inputs)
	if index >= len(sequence) {
		// extra input past the end of the sequence, rejected silently
		return
	}

	correct := dir == sequence[index]
	onTime := anchor.OnTime(index, at)
	player.Inputs = append(player.Inputs, dir)

	room.Broadcast(network.NewPlayerMoveEvent(player.ID, string(dir), correct && onTime, player.Name))
	if !onTime {
		kind := "late"
		if anchor.Offset(index, at) < 0 {
			kind = "early"
		}
		room.Broadcast(network.NewTimingErrorEvent(player.Name, kind))
	}
	if !correct || !onTime {
		s.penalize(player)
	}
	room.BroadcastPlayers()
}

// penalize applies at most one life loss per player per round.
func (s *PlayerTurnState) penalize(player *game.Player) {
	if !player.LoseLife() {
		return
	}
	if player.Lives == 0 {
		s.Room.SendTo(player.ID, network.NewDeadEvent())
		s.Room.Broadcast(network.NewPlayerDiedEvent(player.Name))
	}
}

// expire runs the missed-input force-check once the window closes: an
// alive player who neither finished the sequence nor already lost a life
// this round is charged one.
func (s *PlayerTurnState) expire() {
	if s.resolved {
		return
	}
	room := s.Room
	sequence := room.Sequence()
	for _, player := range room.Players() {
		if !player.Alive() || player.Errored {
			continue
		}
		if missed := len(sequence) - len(player.Inputs); missed > 0 {
			room.Broadcast(network.NewRhythmMissEvent(player.Name, missed))
			s.penalize(player)
		}
	}
	room.BroadcastPlayers()
	room.ClearAnchor()
	s.resolve()
}

func (s *PlayerTurnState) resolve() {
	s.resolved = true
	room := s.Room
	alive := room.AliveParticipants()

	switch {
	case len(alive) == 0:
		room.ChangeState(NewGameOverState(room))

	case len(alive) == 1 && room.ParticipantCount() >= 2:
		winner := alive[0]
		logger.Log.Infof("room %s: %s wins at turn %d", room.GetID(), winner.Name, room.Turn())
		room.Broadcast(network.NewWinnerEvent(winner.Name, room.Turn()))
		room.Schedule(winnerResetDelay, room.ResetGame)

	default:
		room.AdvanceTurn()
		room.Broadcast(network.NewRoundCompleteEvent(room.Turn()))
		room.Schedule(nextRoundDelay, func() {
			room.ChangeState(NewShowingState(room))
		})
	}
}

func directionStrings(sequence []game.Direction) []string {
	out := make([]string, len(sequence))
	for i, d := range sequence {
		out[i] = string(d)
	}
	return out
}

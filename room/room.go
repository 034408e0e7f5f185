// room/room.go
package room

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/wfunc/maestro/game"
	"github.com/wfunc/maestro/logger"
	"github.com/wfunc/maestro/network"
	"github.com/wfunc/maestro/state"
	"github.com/wfunc/maestro/timer"
)

// Room 是一局游戏的核心结构：独占持有玩家记录，由状态机驱动回合
// 推进。入站命令和定时回调都经由同一把锁串行化，跨房间互不阻塞。
type Room struct {
	ID        string
	CreatedAt time.Time

	mutex        sync.Mutex
	players      map[string]*game.Player
	machine      *state.Machine
	scheduler    *timer.Scheduler
	rng          *rand.Rand
	turn         int
	sequence     []game.Direction
	anchor       game.Anchor
	anchored     bool
	participants int
	epoch        int64
	broadcaster  Broadcaster
	onDestroy    func(roomID string)
	closed       bool
}

// NewRoom 创建一个新房间。onDestroy 在房间自毁时回调（注册表用它
// 摘掉自己的表项），可以为 nil。
func NewRoom(id string, broadcaster Broadcaster, onDestroy func(roomID string)) *Room {
	r := &Room{
		ID:          id,
		CreatedAt:   time.Now(),
		players:     make(map[string]*game.Player),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		broadcaster: broadcaster,
		onDestroy:   onDestroy,
	}
	r.scheduler = timer.NewScheduler(r.runTask)
	r.machine = state.NewMachine(state.NewWaitingState(r))
	return r
}

// runTask is the scheduler sink: timer callbacks run under the room lock
// so they never interleave with command handling. A callback racing the
// room's destruction is dropped.
func (r *Room) runTask(fn func()) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}
	fn()
}

// --- 服务器入口（自行加锁） ---

// Join attaches a player record. A join outside the waiting phase is
// accepted but the player spectates until the next game starts.
func (r *Room) Join(playerID, name, skin string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}

	r.players[playerID] = game.NewPlayer(playerID, name, skin)
	logger.Log.Infof("room %s: %s joined (%d players)", r.ID, playerID, len(r.players))
	r.BroadcastPlayers()
}

// Leave removes a player. Mid-round there is no retroactive adjustment to
// the sequence or to other players' indices. The last player leaving
// destroys the room.
func (r *Room) Leave(playerID string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}

	player, exists := r.players[playerID]
	if !exists {
		return
	}
	delete(r.players, playerID)
	logger.Log.Infof("room %s: %s left (%d players)", r.ID, playerID, len(r.players))

	if len(r.players) == 0 {
		r.DestroySelf()
		return
	}
	r.BroadcastPlayers()
	r.machine.Current().OnPlayerLeft(player)
}

// HandleCommand dispatches an inbound command stamped with its arrival
// time. reset is valid in any state; everything else is delegated to the
// current state, which ignores what it does not accept.
func (r *Room) HandleCommand(playerID string, cmd *network.Command, at time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}

	if cmd.Type == network.CmdReset {
		r.ResetGame()
		return
	}

	player, exists := r.players[playerID]
	if !exists {
		return
	}
	r.machine.Current().HandleCommand(player, cmd, at)
}

// PlayerCount returns the number of attached players.
func (r *Room) PlayerCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.players)
}

// StateID returns the current state's id.
func (r *Room) StateID() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.machine.Current().GetID()
}

// Close tears the room down from outside: pending timers are canceled so
// nothing fires against a destroyed room. Safe to call more than once.
func (r *Room) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.scheduler.Stop()
}

// --- 实现 state.RoomContext 接口（调用方已持有房间锁） ---

func (r *Room) GetID() string {
	return r.ID
}

func (r *Room) Players() map[string]*game.Player {
	return r.players
}

func (r *Room) AliveParticipants() []*game.Player {
	var alive []*game.Player
	for _, p := range r.players {
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	return alive
}

func (r *Room) ParticipantCount() int {
	return r.participants
}

// BeginGame marks everyone currently attached as a participant of the
// starting game and records the count for the winner rule.
func (r *Room) BeginGame() {
	r.turn = 0
	r.participants = len(r.players)
	for _, p := range r.players {
		p.Playing = true
	}
}

func (r *Room) Turn() int {
	return r.turn
}

func (r *Room) AdvanceTurn() {
	r.turn++
}

func (r *Room) Sequence() []game.Direction {
	return r.sequence
}

func (r *Room) SetSequence(seq []game.Direction) {
	r.sequence = seq
}

func (r *Room) Anchor() (game.Anchor, bool) {
	return r.anchor, r.anchored
}

func (r *Room) SetAnchor(anchor game.Anchor) {
	r.anchor = anchor
	r.anchored = true
}

func (r *Room) ClearAnchor() {
	r.anchor = game.Anchor{}
	r.anchored = false
}

func (r *Room) Rand() *rand.Rand {
	return r.rng
}

func (r *Room) Broadcast(event interface{}) {
	if err := r.broadcaster.BroadcastToRoom(r.ID, event); err != nil {
		logger.Log.Debugf("room %s: broadcast dropped: %v", r.ID, err)
	}
}

func (r *Room) SendTo(playerID string, event interface{}) {
	if err := r.broadcaster.SendToPlayer(r.ID, playerID, event); err != nil {
		logger.Log.Debugf("room %s: unicast to %s dropped: %v", r.ID, playerID, err)
	}
}

// BroadcastPlayers emits the updatePlayers snapshot. It reads player state
// without mutating it; entries are sorted by id so back-to-back snapshots
// are identical absent other mutation.
func (r *Room) BroadcastPlayers() {
	snapshots := make([]network.PlayerSnapshot, 0, len(r.players))
	for _, p := range r.players {
		snapshots = append(snapshots, network.PlayerSnapshot{
			ID:    p.ID,
			Lives: p.Lives,
			Ready: p.Ready,
			Name:  p.Name,
			Skin:  p.Skin,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].ID < snapshots[j].ID })
	r.Broadcast(network.NewUpdatePlayersEvent(snapshots))
}

func (r *Room) ChangeState(s state.State) {
	r.machine.ChangeState(s)
}

// Schedule and ScheduleRepeat stamp tasks with the current game epoch.
// A task collected by the scheduler in the instant a reset cancels
// everything would otherwise still fire against the fresh game.
func (r *Room) Schedule(delay time.Duration, fn func()) int64 {
	return r.scheduler.Schedule(delay, r.guard(fn))
}

func (r *Room) ScheduleRepeat(delay, interval time.Duration, fn func()) int64 {
	return r.scheduler.ScheduleRepeat(delay, interval, r.guard(fn))
}

func (r *Room) guard(fn func()) func() {
	epoch := r.epoch
	return func() {
		if r.epoch != epoch {
			return
		}
		fn()
	}
}

func (r *Room) Cancel(id int64) {
	r.scheduler.Cancel(id)
}

// ResetGame returns the room to the waiting phase: every pending timer is
// canceled (including a scheduled destruction), lives are restored and the
// turn counter rewinds.
func (r *Room) ResetGame() {
	r.epoch++
	r.scheduler.CancelAll()
	for _, p := range r.players {
		p.ResetGame()
	}
	r.turn = 0
	r.sequence = nil
	r.participants = 0
	r.ClearAnchor()

	logger.Log.Infof("room %s: reset to waiting", r.ID)
	r.Broadcast(network.NewGameResetEvent())
	r.BroadcastPlayers()
	r.ChangeState(state.NewWaitingState(r))
}

// DestroySelf shuts the room down from inside a timer callback or a
// locked section, then tells the registry to drop its entry.
func (r *Room) DestroySelf() {
	if r.closed {
		return
	}
	r.closed = true
	r.scheduler.Stop()
	logger.Log.Infof("room %s: destroyed", r.ID)
	if r.onDestroy != nil {
		r.onDestroy(r.ID)
	}
}

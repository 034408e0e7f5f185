package state

import (
	"math/rand"
	"reflect"
	"time"

	"github.com/wfunc/maestro/game"
)

// mockTask is a delayed task captured instead of scheduled, so tests fire
// transitions by hand.
type mockTask struct {
	id       int64
	delay    time.Duration
	interval time.Duration
	fn       func()
	canceled bool
}

// mockRoom is a test double for RoomContext recording every broadcast,
// unicast, scheduled task and transition.
type mockRoom struct {
	id           string
	players      map[string]*game.Player
	turn         int
	sequence     []game.Direction
	anchor       game.Anchor
	anchored     bool
	rng          *rand.Rand
	participants int
	began        bool

	events       []interface{}
	unicasts     map[string][]interface{}
	tasks        []*mockTask
	nextTaskID   int64
	stateChanges []State
	resetCalled  bool
	destroyed    bool
}

func newMockRoom(id string) *mockRoom {
	return &mockRoom{
		id:       id,
		players:  make(map[string]*game.Player),
		rng:      rand.New(rand.NewSource(1)),
		unicasts: make(map[string][]interface{}),
	}
}

func (m *mockRoom) addParticipant(id, name string, lives int) *game.Player {
	p := game.NewPlayer(id, name, "")
	p.Playing = true
	p.Lives = lives
	m.players[id] = p
	m.participants++
	return p
}

func (m *mockRoom) GetID() string { return m.id }

func (m *mockRoom) Players() map[string]*game.Player { return m.players }

func (m *mockRoom) AliveParticipants() []*game.Player {
	var alive []*game.Player
	for _, p := range m.players {
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	return alive
}

func (m *mockRoom) ParticipantCount() int { return m.participants }

func (m *mockRoom) BeginGame() {
	m.began = true
	m.turn = 0
	m.participants = len(m.players)
	for _, p := range m.players {
		p.Playing = true
	}
}

func (m *mockRoom) Turn() int                        { return m.turn }
func (m *mockRoom) AdvanceTurn()                     { m.turn++ }
func (m *mockRoom) Sequence() []game.Direction       { return m.sequence }
func (m *mockRoom) SetSequence(seq []game.Direction) { m.sequence = seq }

func (m *mockRoom) Anchor() (game.Anchor, bool) { return m.anchor, m.anchored }
func (m *mockRoom) SetAnchor(a game.Anchor)     { m.anchor = a; m.anchored = true }
func (m *mockRoom) ClearAnchor()                { m.anchor = game.Anchor{}; m.anchored = false }

func (m *mockRoom) Rand() *rand.Rand { return m.rng }

func (m *mockRoom) Broadcast(event interface{}) {
	m.events = append(m.events, event)
}

func (m *mockRoom) SendTo(playerID string, event interface{}) {
	m.unicasts[playerID] = append(m.unicasts[playerID], event)
}

func (m *mockRoom) BroadcastPlayers() {
	m.events = append(m.events, "updatePlayers")
}

func (m *mockRoom) ChangeState(s State) {
	m.stateChanges = append(m.stateChanges, s)
	s.OnEnter()
}

func (m *mockRoom) Schedule(delay time.Duration, fn func()) int64 {
	return m.ScheduleRepeat(delay, 0, fn)
}

func (m *mockRoom) ScheduleRepeat(delay, interval time.Duration, fn func()) int64 {
	m.nextTaskID++
	m.tasks = append(m.tasks, &mockTask{
		id:       m.nextTaskID,
		delay:    delay,
		interval: interval,
		fn:       fn,
	})
	return m.nextTaskID
}

func (m *mockRoom) Cancel(id int64) {
	for _, t := range m.tasks {
		if t.id == id {
			t.canceled = true
		}
	}
}

func (m *mockRoom) ResetGame()   { m.resetCalled = true }
func (m *mockRoom) DestroySelf() { m.destroyed = true }

// firePending runs every live task once, in scheduling order, including
// tasks the run itself schedules.
func (m *mockRoom) firePending() {
	for i := 0; i < len(m.tasks); i++ {
		t := m.tasks[i]
		if !t.canceled {
			t.fn()
		}
	}
}

// fireRepeating runs a repeating task until it cancels itself or the
// limit is hit.
func (m *mockRoom) fireRepeating(id int64, limit int) int {
	var task *mockTask
	for _, t := range m.tasks {
		if t.id == id {
			task = t
		}
	}
	fired := 0
	for task != nil && !task.canceled && fired < limit {
		task.fn()
		fired++
	}
	return fired
}

// eventTypes flattens recorded broadcasts to their wire type tags.
func (m *mockRoom) eventTypes() []string {
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		if s, ok := e.(string); ok {
			types = append(types, s)
			continue
		}
		types = append(types, reflect.ValueOf(e).FieldByName("Type").String())
	}
	return types
}

func (m *mockRoom) lastStateID() string {
	if len(m.stateChanges) == 0 {
		return ""
	}
	return m.stateChanges[len(m.stateChanges)-1].GetID()
}

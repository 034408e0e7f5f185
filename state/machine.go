package state

import (
	"time"

	"github.com/wfunc/maestro/game"
	"github.com/wfunc/maestro/network"
)

// Machine 持有当前状态并驱动进出转换。并发保护由持有它的
// 房间负责，这里不加锁。
type Machine struct {
	current State
}

func NewMachine(initial State) *Machine {
	machine := &Machine{current: initial}
	initial.OnEnter()
	return machine
}

func (m *Machine) ChangeState(next State) {
	m.current.OnExit()
	m.current = next
	m.current.OnEnter()
}

func (m *Machine) Current() State {
	return m.current
}

// RoomStateBase 提供各状态的默认空实现
type RoomStateBase struct {
	ID   string
	Room RoomContext
}

func (s *RoomStateBase) GetID() string {
	return s.ID
}

func (s *RoomStateBase) OnEnter() {
	// 默认实现
}

func (s *RoomStateBase) OnExit() {
	// 默认实现
}

// HandleCommand ignores out-of-phase commands; states override what they
// actually accept.
func (s *RoomStateBase) HandleCommand(player *game.Player, cmd *network.Command, at time.Time) {
	// 默认实现，具体状态覆盖
}

func (s *RoomStateBase) OnPlayerLeft(player *game.Player) {
	// 默认实现
}

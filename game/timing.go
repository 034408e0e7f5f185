// game/timing.go
package game

import "time"

// 节奏判定的完整时间契约。四个常量都是精确值，客户端和测试
// 都依赖边界行为。
const (
	baseInterval   = 600 * time.Millisecond
	intervalStep   = 20 * time.Millisecond
	minInterval    = 400 * time.Millisecond
	EarlyTolerance = 100 * time.Millisecond
	LateTolerance  = 600 * time.Millisecond
)

// Interval returns the per-move pacing for a round: max(600 - 20*turn, 400)ms.
func Interval(turn int) time.Duration {
	interval := baseInterval - time.Duration(turn)*intervalStep
	if interval < minInterval {
		return minInterval
	}
	return interval
}

// TimingWindow returns the total input window for a round of the given
// sequence length.
func TimingWindow(turn, length int) time.Duration {
	return Interval(turn) * time.Duration(length)
}

// Anchor marks the instant a round's input window begins, plus the
// per-move interval in force for that round. Present only during the
// player turn.
type Anchor struct {
	Start    time.Time
	Interval time.Duration
}

// Offset returns how far the input at `at` deviates from the expected
// slot for the given sequence index. Negative means early.
func (a Anchor) Offset(index int, at time.Time) time.Duration {
	expected := a.Start.Add(time.Duration(index) * a.Interval)
	return at.Sub(expected)
}

// OnTime reports whether an input at `at` for the given index falls inside
// the asymmetric tolerance window: 100ms early, 600ms late.
func (a Anchor) OnTime(index int, at time.Time) bool {
	offset := a.Offset(index, at)
	return offset >= -EarlyTolerance && offset <= LateTolerance
}

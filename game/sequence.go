// game/sequence.go
package game

import "math/rand"

const (
	baseSequenceLength = 3
	maxSequenceLength  = 10
)

// SequenceLength 计算指定回合的序列长度: min(3 + turn/2, 10)
func SequenceLength(turn int) int {
	length := baseSequenceLength + turn/2
	if length > maxSequenceLength {
		return maxSequenceLength
	}
	return length
}

// NewSequence generates the maestro sequence for a round. Each element is
// drawn independently and uniformly from the four directions; consecutive
// duplicates are allowed. The rand source is injected so rooms can own
// their own stream and tests can seed it.
func NewSequence(turn int, rng *rand.Rand) []Direction {
	sequence := make([]Direction, SequenceLength(turn))
	for i := range sequence {
		sequence[i] = Directions[rng.Intn(len(Directions))]
	}
	return sequence
}

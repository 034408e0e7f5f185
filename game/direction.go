// game/direction.go
package game

// Direction 表示一个方向输入
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Directions is the fixed input domain, in a stable order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// ParseDirection validates a raw direction string from the wire.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirUp, DirDown, DirLeft, DirRight:
		return Direction(s), true
	}
	return "", false
}

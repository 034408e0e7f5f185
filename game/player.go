// game/player.go
package game

const StartingLives = 3

// Player 是房间内的玩家记录，由所属房间独占持有。
// Skin 只影响客户端展示，不参与任何逻辑。
type Player struct {
	ID      string
	Name    string
	Skin    string
	Lives   int
	Ready   bool
	Playing bool // participant of the current game; false means spectating until next waiting phase

	// per-round input log
	Inputs  []Direction
	Errored bool // at most one life loss per round
}

// NewPlayer creates a player record with defaults applied.
func NewPlayer(id, name, skin string) *Player {
	if name == "" {
		name = "Player"
	}
	if skin == "" {
		skin = "1"
	}
	return &Player{
		ID:    id,
		Name:  name,
		Skin:  skin,
		Lives: StartingLives,
	}
}

// Alive reports whether the player is still in the current game.
func (p *Player) Alive() bool {
	return p.Playing && p.Lives > 0
}

// BeginRound clears the per-round input log.
func (p *Player) BeginRound() {
	p.Inputs = p.Inputs[:0]
	p.Errored = false
}

// LoseLife decrements one life, at most once per round. It returns true
// if a life was actually lost.
func (p *Player) LoseLife() bool {
	if p.Errored || p.Lives <= 0 {
		return false
	}
	p.Errored = true
	p.Lives--
	return true
}

// ResetGame restores the record for a fresh game in the waiting phase.
func (p *Player) ResetGame() {
	p.Lives = StartingLives
	p.Ready = false
	p.Playing = false
	p.Inputs = nil
	p.Errored = false
}

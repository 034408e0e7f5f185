package network

// 入站命令类型
const (
	CmdJoin  = "join"
	CmdReady = "ready"
	CmdReset = "reset"
	CmdInput = "input"
)

// 出站事件类型
const (
	EvtUpdatePlayers   = "updatePlayers"
	EvtCountdown       = "countdown"
	EvtNewTurn         = "newTurn"
	EvtMaestroMove     = "maestroMove"
	EvtPlayerCountdown = "playerCountdown"
	EvtPlayerTurn      = "playerTurn"
	EvtPlayerMove      = "playerMove"
	EvtTimingError     = "timingError"
	EvtRhythmMiss      = "rhythmMiss"
	EvtPlayerDied      = "playerDied"
	EvtDead            = "dead"
	EvtRoundComplete   = "roundComplete"
	EvtWinner          = "winner"
	EvtGameOver        = "gameOver"
	EvtGameReset       = "gameReset"
)

// Command is the single inbound message shape. Unused fields stay empty;
// unknown types are ignored by the handler.
type Command struct {
	Type string `json:"type"`
	Room string `json:"room,omitempty"`
	Name string `json:"name,omitempty"`
	Skin string `json:"skin,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// PlayerSnapshot 是 updatePlayers 中的单个玩家条目
type PlayerSnapshot struct {
	ID    string `json:"id"`
	Lives int    `json:"lives"`
	Ready bool   `json:"ready"`
	Name  string `json:"name"`
	Skin  string `json:"skin"`
}

type UpdatePlayersEvent struct {
	Type    string           `json:"type"`
	Players []PlayerSnapshot `json:"players"`
}

func NewUpdatePlayersEvent(players []PlayerSnapshot) UpdatePlayersEvent {
	return UpdatePlayersEvent{Type: EvtUpdatePlayers, Players: players}
}

type CountdownEvent struct {
	Type string `json:"type"`
}

func NewCountdownEvent() CountdownEvent {
	return CountdownEvent{Type: EvtCountdown}
}

type NewTurnEvent struct {
	Type string `json:"type"`
	Turn int    `json:"turn"`
}

func NewNewTurnEvent(turn int) NewTurnEvent {
	return NewTurnEvent{Type: EvtNewTurn, Turn: turn}
}

type MaestroMoveEvent struct {
	Type  string `json:"type"`
	Dir   string `json:"dir"`
	Index int    `json:"index"`
}

func NewMaestroMoveEvent(dir string, index int) MaestroMoveEvent {
	return MaestroMoveEvent{Type: EvtMaestroMove, Dir: dir, Index: index}
}

// PlayerCountdownEvent counts 3-2-1 and then GO (count 0), the GO event
// carrying the first move so playback and acceptance line up on screen.
type PlayerCountdownEvent struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	FirstMove string `json:"firstMove,omitempty"`
}

func NewPlayerCountdownEvent(count int, firstMove string) PlayerCountdownEvent {
	return PlayerCountdownEvent{Type: EvtPlayerCountdown, Count: count, FirstMove: firstMove}
}

type PlayerTurnEvent struct {
	Type         string   `json:"type"`
	Sequence     []string `json:"sequence"`
	TimingWindow int64    `json:"timingWindow"` // milliseconds
}

func NewPlayerTurnEvent(sequence []string, timingWindowMS int64) PlayerTurnEvent {
	return PlayerTurnEvent{Type: EvtPlayerTurn, Sequence: sequence, TimingWindow: timingWindowMS}
}

type PlayerMoveEvent struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Dir     string `json:"dir"`
	Correct bool   `json:"correct"`
	Name    string `json:"name"`
}

func NewPlayerMoveEvent(id, dir string, correct bool, name string) PlayerMoveEvent {
	return PlayerMoveEvent{Type: EvtPlayerMove, ID: id, Dir: dir, Correct: correct, Name: name}
}

type TimingErrorEvent struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Error string `json:"error"` // "early" | "late"
}

func NewTimingErrorEvent(name, kind string) TimingErrorEvent {
	return TimingErrorEvent{Type: EvtTimingError, Name: name, Error: kind}
}

type RhythmMissEvent struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	MissedMoves int    `json:"missedMoves"`
}

func NewRhythmMissEvent(name string, missedMoves int) RhythmMissEvent {
	return RhythmMissEvent{Type: EvtRhythmMiss, Name: name, MissedMoves: missedMoves}
}

type PlayerDiedEvent struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func NewPlayerDiedEvent(name string) PlayerDiedEvent {
	return PlayerDiedEvent{Type: EvtPlayerDied, Name: name}
}

// DeadEvent is the one unicast event, sent only to the eliminated player.
type DeadEvent struct {
	Type string `json:"type"`
}

func NewDeadEvent() DeadEvent {
	return DeadEvent{Type: EvtDead}
}

type RoundCompleteEvent struct {
	Type string `json:"type"`
	Turn int    `json:"turn"`
}

func NewRoundCompleteEvent(turn int) RoundCompleteEvent {
	return RoundCompleteEvent{Type: EvtRoundComplete, Turn: turn}
}

type WinnerEvent struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Turn int    `json:"turn"`
}

func NewWinnerEvent(name string, turn int) WinnerEvent {
	return WinnerEvent{Type: EvtWinner, Name: name, Turn: turn}
}

type GameOverEvent struct {
	Type      string `json:"type"`
	FinalTurn int    `json:"finalTurn"`
}

func NewGameOverEvent(finalTurn int) GameOverEvent {
	return GameOverEvent{Type: EvtGameOver, FinalTurn: finalTurn}
}

type GameResetEvent struct {
	Type string `json:"type"`
}

func NewGameResetEvent() GameResetEvent {
	return GameResetEvent{Type: EvtGameReset}
}

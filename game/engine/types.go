package engine

import (
	"github.com/wricardo/abalone/game/hex"
)

// Player identifies a side. The zero value marks an empty cell.
type Player string

const (
	NoPlayer Player = ""
	Black    Player = "black"
	White    Player = "white"
)

const (
	// WinningScore is the number of opposing marbles a player must push off.
	WinningScore = 6
	// MaxSelection is the largest group that may move together.
	MaxSelection = 3
	// MarblesPerSide is the most marbles a layout may give one player.
	MarblesPerSide = 14
	// LayoutRows is the number of hex rows in a layout.
	LayoutRows = 2*hex.Radius + 1
)

// Opponent returns the other side, or NoPlayer for NoPlayer.
func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return NoPlayer
}

// Valid reports whether p is Black or White.
func (p Player) Valid() bool { return p == Black || p == White }

// MoveKind tags history entries.
type MoveKind string

const (
	Inline    MoveKind = "inline"
	Broadside MoveKind = "broadside"
)

// Score counts opposing marbles each player has pushed off the board.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Of returns the score of p.
func (s Score) Of(p Player) int {
	switch p {
	case Black:
		return s.Black
	case White:
		return s.White
	}
	return 0
}

func (s Score) add(p Player, n int) Score {
	switch p {
	case Black:
		s.Black += n
	case White:
		s.White += n
	}
	return s
}

// Move is one applied move in the game history.
type Move struct {
	Number    int         `json:"number"`
	Player    Player      `json:"player"`
	Marbles   []hex.Coord `json:"marbles"`
	Direction hex.Coord   `json:"direction"`
	Kind      MoveKind    `json:"type"`
	Pushed    int         `json:"pushed,omitempty"`
	Captured  int         `json:"captured,omitempty"`
}

// GameState is an immutable snapshot of a game. Transitions return a new
// value and never modify the receiver's board or history.
type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Player `json:"current_player"`
	Score         Score  `json:"score"`
	Winner        Player `json:"winner,omitempty"`
	History       []Move `json:"history"`
	Message       string `json:"message,omitempty"`
	ConfigName    string `json:"config_name,omitempty"`
}

// ConfigMessages are the texts shown after state transitions.
type ConfigMessages struct {
	Welcome string `json:"welcome" yaml:"welcome"`
	Turn    string `json:"turn,omitempty" yaml:"turn,omitempty"`
	Capture string `json:"capture,omitempty" yaml:"capture,omitempty"`
	Victory string `json:"victory" yaml:"victory"`
}

// GameConfig describes a starting layout. Layout holds the nine hex rows from
// r=-4 (top) to r=4 (bottom); 'B' is black, 'W' is white, '.' is empty and
// spaces are ignored.
type GameConfig struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Layout         []string       `json:"layout" yaml:"layout"`
	StartingPlayer Player         `json:"starting_player,omitempty" yaml:"starting_player,omitempty"`
	Messages       ConfigMessages `json:"messages" yaml:"messages"`
}

// CellInfo describes one coordinate for clients that inspect the board.
type CellInfo struct {
	Coord      hex.Coord         `json:"coord"`
	OnBoard    bool              `json:"on_board"`
	Occupant   Player            `json:"occupant,omitempty"`
	Edge       bool              `json:"edge"`
	Neighbours map[string]Player `json:"neighbours,omitempty"`
}

package engine

import (
	"fmt"

	"github.com/wricardo/abalone/game/hex"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	Winner() Player
	GetScore() Score
	CurrentPlayer() Player

	// Movement operations
	Validate(marbles []hex.Coord, target hex.Coord) Validation
	Move(marbles []hex.Coord, target hex.Coord) (Validation, error)
	Undo() error
	CanUndo() bool

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []Move
	GetLastMove() *Move

	// Board inspection
	Marbles(p Player) []hex.Coord
	Render() string
}

// GameEngine implements the Engine interface on top of the pure ApplyMove
// transition. It keeps the states preceding each applied move so moves can
// be taken back.
type GameEngine struct {
	state  *GameState
	config *GameConfig
	undo   []GameState
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the standard layout
func NewEngineWithDefaults() *GameEngine {
	config := StandardConfig()
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading). The undo
// stack is dropped since it no longer leads to state.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if !state.CurrentPlayer.Valid() {
		return fmt.Errorf("state has invalid current player %q", state.CurrentPlayer)
	}
	e.state = state
	e.undo = nil
	return nil
}

// Reset restores the configured starting layout, clearing history
func (e *GameEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	e.undo = nil
	return e.state
}

// IsGameOver returns whether a player has reached the winning score
func (e *GameEngine) IsGameOver() bool {
	return e.state.Winner != NoPlayer
}

// Winner returns the winning player, or NoPlayer while the game is running
func (e *GameEngine) Winner() Player {
	return e.state.Winner
}

// GetScore returns the current score
func (e *GameEngine) GetScore() Score {
	return e.state.Score
}

// CurrentPlayer returns the player to move
func (e *GameEngine) CurrentPlayer() Player {
	return e.state.CurrentPlayer
}

// Validate checks a move against the current state without applying it
func (e *GameEngine) Validate(marbles []hex.Coord, target hex.Coord) Validation {
	return ValidateMove(*e.state, marbles, target)
}

// Move applies a move for the player to move. Rejected moves leave the
// state untouched and return the validation together with a *RuleError.
func (e *GameEngine) Move(marbles []hex.Coord, target hex.Coord) (Validation, error) {
	if e.IsGameOver() {
		return Validation{}, ErrGameOver
	}

	prev := *e.state
	next, v := Apply(prev, marbles, target)
	if !v.Valid {
		return v, v.Err()
	}

	next.Message = e.moveMessage(&next)
	e.undo = append(e.undo, prev)
	e.state = &next
	return v, nil
}

func (e *GameEngine) moveMessage(s *GameState) string {
	msgs := e.messages()
	last := s.History[len(s.History)-1]
	switch {
	case s.Winner != NoPlayer:
		return fmt.Sprintf(msgs.Victory, s.Winner)
	case last.Captured > 0 && msgs.Capture != "":
		return fmt.Sprintf(msgs.Capture, last.Player)
	case msgs.Turn != "":
		return fmt.Sprintf(msgs.Turn, s.CurrentPlayer)
	}
	return ""
}

func (e *GameEngine) messages() ConfigMessages {
	if e.config == nil {
		return StandardConfig().Messages
	}
	return e.config.Messages
}

// Undo restores the state before the last applied move
func (e *GameEngine) Undo() error {
	if len(e.undo) == 0 {
		return ErrNothingToUndo
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.state = &prev
	return nil
}

// CanUndo reports whether a move can be taken back
func (e *GameEngine) CanUndo() bool {
	return len(e.undo) > 0
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	e.undo = nil
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []Move {
	return e.state.History
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *Move {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// Marbles lists p's marbles on the current board
func (e *GameEngine) Marbles(p Player) []hex.Coord {
	return e.state.Board.Marbles(p)
}

// Render draws the current board as text
func (e *GameEngine) Render() string {
	return RenderBoard(&e.state.Board)
}

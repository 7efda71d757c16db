package service

import (
	"time"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	CanUndo        bool               `json:"can_undo"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move, undo or reset
type MoveResult struct {
	EventID   string            `json:"event_id"`
	Success   bool              `json:"success"`
	Reason    engine.Reason     `json:"reason,omitempty"`
	Message   string            `json:"message"`
	Kind      engine.MoveKind   `json:"kind,omitempty"`
	Pushed    int               `json:"pushed,omitempty"`
	Captured  int               `json:"captured,omitempty"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// SelectResult is the selection after a click, plus whether it can move.
type SelectResult struct {
	Selection []hex.Coord   `json:"selection"`
	Movable   bool          `json:"movable"`
	Reason    engine.Reason `json:"reason,omitempty"`
}

// Event types emitted on MoveResult
const (
	EventMove    = "move"
	EventPush    = "push"
	EventCapture = "capture"
	EventVictory = "victory"
	EventReset   = "reset"
	EventUndo    = "undo"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Player    engine.Player `json:"player,omitempty"`
	Marbles   []hex.Coord   `json:"marbles,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.Move `json:"moves"`
	TotalMoves  int           `json:"total_moves"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// ConfigInfo provides information about a layout configuration
type ConfigInfo struct {
	Filename       string        `json:"filename"`
	ConfigID       string        `json:"config_id"` // The identifier to use for session creation
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	StartingPlayer engine.Player `json:"starting_player"`
	BlackMarbles   int           `json:"black_marbles"`
	WhiteMarbles   int           `json:"white_marbles"`
}

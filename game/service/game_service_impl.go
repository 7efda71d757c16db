package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "standard"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		CanUndo:        sess.Engine.CanUndo(),
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found, available configs: %v: %w", configName, configIDs, err)
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().Str("session", sess.ID).Str("config", configID).Msg("session created")
	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.touch(sessionID)
	return s.sessionInfo(sess, s.getConfigID(sess.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// ValidateMove checks a move without applying it
func (s *gameServiceImpl) ValidateMove(ctx context.Context, sessionID string, marbles []hex.Coord, target hex.Coord) (*engine.Validation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	v := sess.Engine.Validate(marbles, target)
	return &v, nil
}

// Move applies a move for the player to move. A rule violation is not an
// error: it is reported on the result with Success=false and the reason.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, marbles []hex.Coord, target hex.Coord) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.touch(sessionID)

	v, err := sess.Engine.Move(marbles, target)
	state := sess.Engine.GetState()
	result := &MoveResult{
		EventID:   uuid.NewString(),
		GameState: state,
		Events:    []GameEvent{},
	}

	switch {
	case errors.Is(err, engine.ErrGameOver):
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	case err != nil:
		result.Reason = v.Reason
		result.Message = v.Message
		log.Debug().Str("session", sessionID).Str("reason", string(v.Reason)).Msg("move rejected")
		return result, nil
	}

	last := sess.Engine.GetLastMove()
	result.Success = true
	result.Message = state.Message
	result.Kind = v.Kind
	result.Pushed = v.Pushed
	result.Captured = last.Captured
	result.Events = moveEvents(last, state)

	s.persist(sessionID, "move")
	return result, nil
}

// Undo takes back the last move of a session
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.touch(sessionID)

	if err := sess.Engine.Undo(); err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	state := sess.Engine.GetState()

	s.persist(sessionID, "undo")
	return &MoveResult{
		EventID:   uuid.NewString(),
		Success:   true,
		Message:   fmt.Sprintf("Move undone, %s to move", state.CurrentPlayer),
		GameState: state,
		Events: []GameEvent{{
			Type:      EventUndo,
			Message:   "Last move taken back",
			Timestamp: time.Now(),
			Player:    state.CurrentPlayer,
		}},
	}, nil
}

// Reset resets a game session to its starting layout
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.touch(sessionID)
	state := sess.Engine.Reset()

	s.persist(sessionID, "reset")
	return state, nil
}

// Select applies a click to a caller-held selection
func (s *gameServiceImpl) Select(ctx context.Context, sessionID string, selection []hex.Coord, clicked hex.Coord) (*SelectResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	state := sess.Engine.GetState()
	next := slices.Clone(selection)
	if !sess.Engine.IsGameOver() {
		next = engine.ToggleSelection(state, selection, clicked)
	}
	if next == nil {
		next = []hex.Coord{}
	}
	reason := engine.CheckSelection(state, next)
	return &SelectResult{
		Selection: next,
		Movable:   reason == "",
		Reason:    reason,
	}, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.touch(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	return paginate(sess.Engine.GetMoveHistory(), opts), nil
}

func paginate(history []engine.Move, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := min((opts.Page-1)*opts.Limit, total)
	end := min(start+opts.Limit, total)

	moves := make([]engine.Move, 0, end-start)
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}

// ListConfigs returns available layout configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific layout configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a layout configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// touch writes the session's access time; callers hold s.mu for writing.
func (s *gameServiceImpl) touch(sessionID string) {
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("update last accessed")
	}
}

func (s *gameServiceImpl) persist(sessionID, op string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Str("op", op).Msg("persist session")
	}
}

// moveEvents describes an applied move as a list of events.
func moveEvents(m *engine.Move, state *engine.GameState) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("%s moved %d marble(s) %s (%s)", m.Player, len(m.Marbles), hex.DirectionName(m.Direction), m.Kind),
		Timestamp: now,
		Player:    m.Player,
		Marbles:   m.Marbles,
	}}
	if m.Pushed > 0 {
		events = append(events, GameEvent{
			Type:      EventPush,
			Message:   fmt.Sprintf("%s pushed %d opposing marble(s)", m.Player, m.Pushed),
			Timestamp: now,
			Player:    m.Player,
		})
	}
	if m.Captured > 0 {
		events = append(events, GameEvent{
			Type:      EventCapture,
			Message:   fmt.Sprintf("%s pushed a marble off the board, score %d", m.Player, state.Score.Of(m.Player)),
			Timestamp: now,
			Player:    m.Player,
		})
	}
	if state.Winner != engine.NoPlayer {
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   state.Message,
			Timestamp: now,
			Player:    state.Winner,
		})
	}
	return events
}

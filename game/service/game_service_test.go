package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
	"github.com/wricardo/abalone/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    map[string]int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		saves:    make(map[string]int),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	session, exists := m.sessions[id]
	if !exists {
		return service.ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	m.saves[id]++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	standard := engine.StandardConfig()

	whiteFirst := engine.StandardConfig()
	whiteFirst.Name = "White First"
	whiteFirst.Description = "Standard layout with white opening"
	whiteFirst.StartingPlayer = engine.White

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"standard":    standard,
			"white_first": whiteFirst,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, fmt.Errorf("%s: %w", name, service.ErrConfigNotFound)
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for id, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:       id + ".yaml",
			ConfigID:       id,
			Name:           config.Name,
			Description:    config.Description,
			StartingPlayer: config.StartingPlayer,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["standard"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidConfig, err)
	}
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, *MockConfigManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	return service.NewGameService(sessions, configs), sessions, configs
}

func pt(q, r int) hex.Coord { return hex.Coord{Q: q, R: r} }

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	tests := []struct {
		name       string
		configName string
		wantConfig string
		wantFirst  engine.Player
		wantErr    bool
	}{
		{name: "default config", configName: "", wantConfig: "standard", wantFirst: engine.Black},
		{name: "specific config", configName: "white_first", wantConfig: "white_first", wantFirst: engine.White},
		{name: "unknown config", configName: "nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.configName)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, service.ErrConfigNotFound)
				assert.Contains(t, err.Error(), "available configs")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantConfig, info.ConfigName)
			assert.Equal(t, tt.wantFirst, info.GameState.CurrentPlayer)
			assert.False(t, info.CanUndo)
			assert.NotEmpty(t, info.GameState.Message)
		})
	}
}

func TestGameService_GetListDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, "white_first")
	require.NoError(t, err)

	info, err := svc.GetSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, info.ID)

	list, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteSession(ctx, first.ID))
	_, err = svc.GetSession(ctx, first.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, first.ID), service.ErrSessionNotFound)
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	t.Run("valid opening move", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, []hex.Coord{pt(-1, 2)}, pt(-1, 1))
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.EventID)
		assert.Equal(t, engine.Inline, result.Kind)
		assert.Equal(t, "white to move", result.Message)
		assert.Equal(t, engine.White, result.GameState.CurrentPlayer)
		require.Len(t, result.Events, 1)
		assert.Equal(t, service.EventMove, result.Events[0].Type)
		assert.Equal(t, 1, sessions.saves[info.ID])
	})

	t.Run("rule violation is reported on the result", func(t *testing.T) {
		// white to move, so black marbles are not selectable
		result, err := svc.Move(ctx, info.ID, []hex.Coord{pt(0, 2)}, pt(0, 1))
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, engine.ReasonNotOwnMarble, result.Reason)
		assert.Equal(t, engine.ReasonNotOwnMarble.Message(), result.Message)
		assert.Len(t, result.GameState.History, 1)
		assert.Equal(t, 1, sessions.saves[info.ID])
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Move(ctx, "nonexistent", []hex.Coord{pt(-1, 2)}, pt(-1, 1))
		assert.ErrorIs(t, err, service.ErrSessionNotFound)
	})
}

func TestGameService_ValidateMove(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	v, err := svc.ValidateMove(ctx, info.ID, []hex.Coord{pt(-1, 2), pt(0, 2), pt(1, 2)}, pt(-1, 1))
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, engine.Broadside, v.Kind)

	v, err = svc.ValidateMove(ctx, info.ID, []hex.Coord{pt(-1, 2)}, pt(-1, 0))
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, engine.ReasonNotAdjacent, v.Reason)

	state, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)
	assert.Empty(t, state.History, "validation must not change the game")
}

func TestGameService_CaptureAndVictory(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	var board engine.Board
	board.Set(pt(0, -2), engine.Black)
	board.Set(pt(0, -3), engine.Black)
	board.Set(pt(0, -4), engine.White)
	board.Set(pt(3, 0), engine.White)
	state := engine.NewGameState(board, engine.Black)
	state.Score = engine.Score{Black: 5}
	require.NoError(t, sessions.sessions[info.ID].Engine.SetState(&state))

	result, err := svc.Move(ctx, info.ID, []hex.Coord{pt(0, -2), pt(0, -3)}, pt(0, -4))
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 1, result.Captured)
	assert.Equal(t, engine.Black, result.GameState.Winner)
	assert.Equal(t, "black wins!", result.Message)

	var types []string
	for _, ev := range result.Events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []string{service.EventMove, service.EventPush, service.EventCapture, service.EventVictory}, types)

	_, err = svc.Move(ctx, info.ID, []hex.Coord{pt(3, 0)}, pt(2, 0))
	assert.ErrorIs(t, err, engine.ErrGameOver)

	sel, err := svc.Select(ctx, info.ID, []hex.Coord{}, pt(0, -3))
	require.NoError(t, err)
	assert.Empty(t, sel.Selection, "selection is frozen once the game is won")
}

func TestGameService_Undo(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.Undo(ctx, info.ID)
	assert.ErrorIs(t, err, engine.ErrNothingToUndo)

	_, err = svc.Move(ctx, info.ID, []hex.Coord{pt(-1, 2)}, pt(-1, 1))
	require.NoError(t, err)

	result, err := svc.Undo(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, engine.Black, result.GameState.CurrentPlayer)
	assert.Empty(t, result.GameState.History)
	require.Len(t, result.Events, 1)
	assert.Equal(t, service.EventUndo, result.Events[0].Type)

	session, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, session.CanUndo)
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.Move(ctx, info.ID, []hex.Coord{pt(-1, 2)}, pt(-1, 1))
	require.NoError(t, err)

	state, err := svc.Reset(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StandardLayout(), state.Board)
	assert.Equal(t, engine.Black, state.CurrentPlayer)
	assert.Empty(t, state.History)

	_, err = svc.Undo(ctx, info.ID)
	assert.ErrorIs(t, err, engine.ErrNothingToUndo)

	_, err = svc.Reset(ctx, "nonexistent")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestGameService_Select(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	sel, err := svc.Select(ctx, info.ID, nil, pt(-1, 2))
	require.NoError(t, err)
	assert.Equal(t, []hex.Coord{pt(-1, 2)}, sel.Selection)
	assert.True(t, sel.Movable)

	sel, err = svc.Select(ctx, info.ID, sel.Selection, pt(0, 2))
	require.NoError(t, err)
	assert.Equal(t, []hex.Coord{pt(-1, 2), pt(0, 2)}, sel.Selection)
	assert.True(t, sel.Movable)

	// opponent marbles are ignored
	sel, err = svc.Select(ctx, info.ID, sel.Selection, pt(0, -2))
	require.NoError(t, err)
	assert.Len(t, sel.Selection, 2)

	sel, err = svc.Select(ctx, info.ID, sel.Selection, pt(-1, 2))
	require.NoError(t, err)
	assert.Equal(t, []hex.Coord{pt(0, 2)}, sel.Selection)

	sel, err = svc.Select(ctx, info.ID, sel.Selection, pt(0, 2))
	require.NoError(t, err)
	assert.Empty(t, sel.Selection)
	assert.False(t, sel.Movable)
	assert.Equal(t, engine.ReasonEmptySelection, sel.Reason)
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	// shuffle one marble of each side back and forth
	moves := [][2]hex.Coord{
		{pt(-1, 2), pt(-1, 1)},
		{pt(1, -2), pt(1, -1)},
		{pt(-1, 1), pt(-1, 2)},
		{pt(1, -1), pt(1, -2)},
		{pt(-1, 2), pt(-1, 1)},
	}
	for i, m := range moves {
		result, err := svc.Move(ctx, info.ID, []hex.Coord{m[0]}, m[1])
		require.NoError(t, err)
		require.True(t, result.Success, "move %d rejected: %s", i+1, result.Reason)
	}

	tests := []struct {
		name        string
		opts        service.HistoryOptions
		wantNumbers []int
		wantPages   int
		wantNext    bool
		wantPrev    bool
	}{
		{
			name:        "defaults to newest first",
			opts:        service.HistoryOptions{},
			wantNumbers: []int{5, 4, 3, 2, 1},
			wantPages:   1,
		},
		{
			name:        "ascending first page",
			opts:        service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"},
			wantNumbers: []int{1, 2},
			wantPages:   3,
			wantNext:    true,
		},
		{
			name:        "descending last page",
			opts:        service.HistoryOptions{Page: 3, Limit: 2, Order: "desc"},
			wantNumbers: []int{1},
			wantPages:   3,
			wantPrev:    true,
		},
		{
			name:        "page past the end",
			opts:        service.HistoryOptions{Page: 9, Limit: 2},
			wantNumbers: []int{},
			wantPages:   3,
			wantPrev:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetMoveHistory(ctx, info.ID, tt.opts)
			require.NoError(t, err)

			numbers := []int{}
			for _, m := range resp.Moves {
				numbers = append(numbers, m.Number)
			}
			assert.Equal(t, tt.wantNumbers, numbers)
			assert.Equal(t, 5, resp.TotalMoves)
			assert.Equal(t, tt.wantPages, resp.TotalPages)
			assert.Equal(t, tt.wantNext, resp.HasNext)
			assert.Equal(t, tt.wantPrev, resp.HasPrevious)
		})
	}

	t.Run("limit is capped", func(t *testing.T) {
		resp, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Limit: 1000})
		require.NoError(t, err)
		assert.Equal(t, 100, resp.PageSize)
	})
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	configs, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 2)

	custom := engine.StandardConfig()
	custom.Name = "Custom"
	require.NoError(t, svc.SaveConfig(ctx, "custom", custom))

	loaded, err := svc.LoadConfig(ctx, "custom")
	require.NoError(t, err)
	assert.Equal(t, "Custom", loaded.Name)

	broken := engine.StandardConfig()
	broken.Layout = nil
	assert.ErrorIs(t, svc.SaveConfig(ctx, "broken", broken), service.ErrInvalidConfig)
}

func TestGameService_ConcurrentReads(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "standard")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.GetSession(ctx, info.ID); err != nil {
					t.Errorf("GetSession: %v", err)
					return
				}
				if _, err := svc.GetGameState(ctx, info.ID); err != nil {
					t.Errorf("GetGameState: %v", err)
					return
				}
				if _, err := svc.ListSessions(ctx); err != nil {
					t.Errorf("ListSessions: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, got.LastAccessedAt.Before(info.LastAccessedAt))
}

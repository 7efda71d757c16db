package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/abalone/game/hex"
)

// A short game in which black wears down a lone white line on the east edge.
func TestEngineCaptureSequenceToVictory(t *testing.T) {
	eng := NewEngineWithDefaults()

	var black, white []hex.Coord
	for r := -3; r <= 3; r++ {
		minQ, maxQ := hex.RowBounds(r)
		if maxQ-minQ < 4 {
			continue
		}
		black = append(black, c(maxQ-2, r), c(maxQ-1, r))
		white = append(white, c(maxQ, r))
	}
	// a white reserve so white always has a legal reply
	white = append(white, c(-4, 4))
	state := stateWith(t, black, white, Black)
	require.NoError(t, eng.SetState(&state))

	reserve := c(-4, 4)
	captures := 0
	for r := -3; r <= 3 && !eng.IsGameOver(); r++ {
		minQ, maxQ := hex.RowBounds(r)
		if maxQ-minQ < 4 {
			continue
		}
		_, err := eng.Move(coords(c(maxQ-2, r), c(maxQ-1, r)), c(maxQ, r))
		require.NoError(t, err, "row %d", r)
		captures++
		assert.Equal(t, captures, eng.GetScore().Black)

		if eng.IsGameOver() {
			break
		}
		// white shuffles the reserve marble back and forth
		next := c(-3, 4)
		if reserve == next {
			next = c(-4, 4)
		}
		_, err = eng.Move(coords(reserve), next)
		require.NoError(t, err)
		reserve = next
	}

	assert.True(t, eng.IsGameOver())
	assert.Equal(t, Black, eng.Winner())
	assert.Equal(t, WinningScore, eng.GetScore().Black)
	assert.Equal(t, "black wins!", eng.GetState().Message)

	_, err := eng.Move(coords(c(2, -3)), c(3, -3))
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestGameStateJSONRoundTrip(t *testing.T) {
	s0 := NewGameState(StandardLayout(), Black)
	s1 := ApplyMove(s0, coords(c(-1, 2), c(0, 2), c(1, 2)), c(-1, 1))
	require.Len(t, s1.History, 1)

	data, err := json.Marshal(s1)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	board, ok := raw["board"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, board, 2*MarblesPerSide)
	assert.Equal(t, "black", board["-1,1"])
	assert.Equal(t, "white", raw["current_player"])

	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s1, decoded)
}

func TestBoardUnmarshalRejectsBadInput(t *testing.T) {
	var b Board
	assert.Error(t, json.Unmarshal([]byte(`{"9,9":"black"}`), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"0,0":"red"}`), &b))
	assert.Error(t, json.Unmarshal([]byte(`{"zero":"black"}`), &b))
	require.NoError(t, json.Unmarshal([]byte(`{"0,0":"white"}`), &b))
	assert.Equal(t, White, b.At(hex.Center))
}

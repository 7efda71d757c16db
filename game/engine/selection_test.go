package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wricardo/abalone/game/hex"
)

func TestToggleSelection(t *testing.T) {
	state := stateWith(t,
		coords(c(0, 0), c(1, 0), c(2, 0), c(3, 0), c(0, 1), c(-2, 2)),
		coords(c(0, -1)),
		Black)

	tests := []struct {
		name      string
		selection []hex.Coord
		clicked   hex.Coord
		want      []hex.Coord
	}{
		{"first marble", nil, c(0, 0), coords(c(0, 0))},
		{"deselect", coords(c(0, 0), c(1, 0)), c(0, 0), coords(c(1, 0))},
		{"adjacent second", coords(c(0, 0)), c(1, 0), coords(c(0, 0), c(1, 0))},
		{"distant second restarts", coords(c(0, 0)), c(-2, 2), coords(c(-2, 2))},
		{"collinear third", coords(c(0, 0), c(1, 0)), c(2, 0), coords(c(0, 0), c(1, 0), c(2, 0))},
		{"third on the other end", coords(c(1, 0), c(2, 0)), c(0, 0), coords(c(1, 0), c(2, 0), c(0, 0))},
		{"bent third restarts", coords(c(0, 0), c(1, 0)), c(0, 1), coords(c(0, 1))},
		{"detached third restarts", coords(c(0, 0), c(1, 0)), c(3, 0), coords(c(3, 0))},
		{"fourth restarts", coords(c(0, 0), c(1, 0), c(2, 0)), c(3, 0), coords(c(3, 0))},
		{"opponent marble ignored", coords(c(0, 0)), c(0, -1), coords(c(0, 0))},
		{"empty cell ignored", coords(c(0, 0)), c(4, -4), coords(c(0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleSelection(&state, tt.selection, tt.clicked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleSelectionDoesNotAliasInput(t *testing.T) {
	state := stateWith(t, coords(c(0, 0), c(1, 0), c(2, 0)), nil, Black)
	selection := make([]hex.Coord, 2, 3)
	selection[0], selection[1] = c(0, 0), c(1, 0)

	got := ToggleSelection(&state, selection, c(2, 0))
	got[0] = c(9, 9)

	assert.Equal(t, c(0, 0), selection[0])

	dropped := ToggleSelection(&state, selection, c(0, 0))
	assert.Equal(t, coords(c(1, 0)), dropped)
	assert.Equal(t, coords(c(0, 0), c(1, 0)), selection)
}

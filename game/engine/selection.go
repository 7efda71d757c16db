package engine

import (
	"slices"

	"github.com/wricardo/abalone/game/hex"
)

// ToggleSelection updates a caller-held selection after the player clicks a
// cell holding one of their own marbles. Clicking a selected marble removes
// it; a marble that cannot extend the current group starts a new selection.
// Clicks on anything else leave the selection unchanged.
func ToggleSelection(state *GameState, selection []hex.Coord, clicked hex.Coord) []hex.Coord {
	out := slices.Clone(selection)
	if state.Board.At(clicked) != state.CurrentPlayer {
		return out
	}
	if i := slices.Index(out, clicked); i >= 0 {
		return slices.Delete(out, i, i+1)
	}

	switch len(out) {
	case 0:
	case 1:
		// second marble must touch the first
		if !hex.Adjacent(out[0], clicked) {
			return []hex.Coord{clicked}
		}
	case 2:
		touches := hex.Adjacent(out[0], clicked) || hex.Adjacent(out[1], clicked)
		if !touches || !hex.Collinear(out[0], out[1], clicked) {
			return []hex.Coord{clicked}
		}
	default:
		return []hex.Coord{clicked}
	}
	return append(out, clicked)
}

package engine

import (
	"encoding/json"
	"fmt"

	"github.com/wricardo/abalone/game/hex"
)

// Board holds the occupant of every on-board cell, indexed by hex.Index.
// It is an array, so assignment copies it.
type Board [hex.CellCount]Player

// At returns the occupant of c. Off-board coordinates are always empty.
func (b *Board) At(c hex.Coord) Player {
	i, ok := hex.Index(c)
	if !ok {
		return NoPlayer
	}
	return b[i]
}

// Set places p on c. It reports false for off-board coordinates.
func (b *Board) Set(c hex.Coord, p Player) bool {
	i, ok := hex.Index(c)
	if !ok {
		return false
	}
	b[i] = p
	return true
}

// Clear empties c.
func (b *Board) Clear(c hex.Coord) { b.Set(c, NoPlayer) }

// Count returns the number of marbles p has on the board.
func (b *Board) Count(p Player) int {
	n := 0
	for _, occ := range b {
		if occ == p {
			n++
		}
	}
	return n
}

// Marbles lists the coordinates of p's marbles in index order.
func (b *Board) Marbles(p Player) []hex.Coord {
	var out []hex.Coord
	for i, occ := range b {
		if occ == p {
			out = append(out, hex.CoordAt(i))
		}
	}
	return out
}

// MarshalJSON encodes the board as the sparse {"q,r": "black"} map.
func (b Board) MarshalJSON() ([]byte, error) {
	m := make(map[string]Player)
	for i, occ := range b {
		if occ != NoPlayer {
			m[hex.Key(hex.CoordAt(i))] = occ
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the sparse map form, rejecting off-board keys.
func (b *Board) UnmarshalJSON(data []byte) error {
	var m map[string]Player
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var next Board
	for key, p := range m {
		c, err := hex.ParseKey(key)
		if err != nil {
			return err
		}
		if !p.Valid() {
			return fmt.Errorf("board: unknown player %q at %s", p, key)
		}
		if !next.Set(c, p) {
			return fmt.Errorf("board: coordinate %s is off the board", key)
		}
	}
	*b = next
	return nil
}

package engine

import (
	"strings"

	"github.com/wricardo/abalone/game/hex"
)

// RenderBoard draws the board as nine indented rows, top row r=-4 first.
// Black is B, white is W and empty cells are dots.
func RenderBoard(board *Board) string {
	var sb strings.Builder
	for r := -hex.Radius; r <= hex.Radius; r++ {
		minQ, maxQ := hex.RowBounds(r)
		sb.WriteString(strings.Repeat(" ", abs(r)))
		for q := minQ; q <= maxQ; q++ {
			if q > minQ {
				sb.WriteByte(' ')
			}
			sb.WriteByte(cellChar(board.At(hex.Coord{Q: q, R: r})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsEdge reports whether c is an on-board cell on the outer ring.
func IsEdge(c hex.Coord) bool {
	return hex.IsOnBoard(c) && hex.Distance(c, hex.Center) == hex.Radius
}

// EdgeMarbles lists p's marbles on the outer ring, the ones exposed to being
// pushed off.
func EdgeMarbles(board *Board, p Player) []hex.Coord {
	var out []hex.Coord
	for _, c := range board.Marbles(p) {
		if IsEdge(c) {
			out = append(out, c)
		}
	}
	return out
}

// DescribeCell reports the occupant and neighbourhood of c.
func DescribeCell(board *Board, c hex.Coord) CellInfo {
	info := CellInfo{Coord: c, OnBoard: hex.IsOnBoard(c)}
	if !info.OnBoard {
		return info
	}
	info.Occupant = board.At(c)
	info.Edge = IsEdge(c)
	info.Neighbours = make(map[string]Player, len(hex.Directions))
	for _, d := range hex.Directions {
		n := hex.Add(c, d)
		if !hex.IsOnBoard(n) {
			continue
		}
		info.Neighbours[hex.DirectionName(d)] = board.At(n)
	}
	return info
}

// RemainingMarbles returns how many marbles each side still has on the board.
func RemainingMarbles(board *Board) Score {
	return Score{Black: board.Count(Black), White: board.Count(White)}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

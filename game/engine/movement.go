package engine

import (
	"slices"

	"github.com/wricardo/abalone/game/hex"
)

// Validation is the outcome of ValidateMove. When Valid is false, Reason and
// Message explain the rejection and the remaining fields are zero.
type Validation struct {
	Valid     bool      `json:"valid"`
	Reason    Reason    `json:"reason,omitempty"`
	Message   string    `json:"error,omitempty"`
	Direction hex.Coord `json:"direction"`
	Kind      MoveKind  `json:"kind,omitempty"`
	Leader    hex.Coord `json:"leader"`
	Pushed    int       `json:"pushed,omitempty"`
}

// Err returns nil for a valid move and a *RuleError otherwise.
func (v Validation) Err() error {
	if v.Valid {
		return nil
	}
	return &RuleError{Reason: v.Reason, Message: v.Message}
}

func reject(r Reason) Validation {
	return Validation{Reason: r, Message: r.Message()}
}

// CheckSelection applies the selection-level rules: 1..3 marbles, all owned
// by the player to move, and groups forming one contiguous line. A state
// with no player to move owns nothing. It returns
// the reason of the first violated rule, or "" when the selection is usable.
func CheckSelection(state *GameState, marbles []hex.Coord) Reason {
	if len(marbles) == 0 {
		return ReasonEmptySelection
	}
	if len(marbles) > MaxSelection {
		return ReasonTooManyMarbles
	}
	if !state.CurrentPlayer.Valid() {
		return ReasonNotOwnMarble
	}
	for _, m := range marbles {
		if state.Board.At(m) != state.CurrentPlayer {
			return ReasonNotOwnMarble
		}
	}
	if len(marbles) > 1 {
		if _, ok := hex.Axis(marbles); !ok {
			return ReasonMisalignedGroup
		}
	}
	return ""
}

// ValidateMove decides whether moving marbles toward target is legal for the
// player to move and resolves the unit direction of the move.
func ValidateMove(state GameState, marbles []hex.Coord, target hex.Coord) Validation {
	if r := CheckSelection(&state, marbles); r != "" {
		return reject(r)
	}

	var axis hex.Coord
	if len(marbles) > 1 {
		axis, _ = hex.Axis(marbles)
	}

	dir, ok := resolveDirection(marbles, target, axis)
	if !ok {
		return reject(ReasonNotAdjacent)
	}

	if len(marbles) == 1 || dir == axis || dir == axis.Neg() {
		return validateInline(&state, marbles, dir)
	}
	return validateSideStep(&state, marbles, dir)
}

// resolveDirection finds the unit vector from a selected marble to target.
// A vector parallel to the group's axis wins over side-step readings;
// otherwise the first marble in selection order decides.
func resolveDirection(marbles []hex.Coord, target, axis hex.Coord) (hex.Coord, bool) {
	if slices.Contains(marbles, target) {
		return hex.Coord{}, false
	}
	var found hex.Coord
	ok := false
	for _, m := range marbles {
		diff := hex.Sub(target, m)
		if !hex.IsDirection(diff) {
			continue
		}
		if len(marbles) > 1 && (diff == axis || diff == axis.Neg()) {
			return diff, true
		}
		if !ok {
			found, ok = diff, true
		}
	}
	return found, ok
}

// leader returns the marble furthest advanced along dir.
func leader(marbles []hex.Coord, dir hex.Coord) hex.Coord {
	best := marbles[0]
	for _, m := range marbles[1:] {
		if hex.Project(m, dir) > hex.Project(best, dir) {
			best = m
		}
	}
	return best
}

// TargetFor returns the target cell that ValidateMove reads as moving
// marbles one step along dir. Clients that speak in directions use it to
// build a move.
func TargetFor(marbles []hex.Coord, dir hex.Coord) hex.Coord {
	if len(marbles) == 0 {
		return dir
	}
	if axis, ok := hex.Axis(marbles); ok && (dir == axis || dir == axis.Neg()) {
		return hex.Add(leader(marbles, dir), dir)
	}
	return hex.Add(marbles[0], dir)
}

func validateInline(state *GameState, marbles []hex.Coord, dir hex.Coord) Validation {
	mover := state.CurrentPlayer
	lead := leader(marbles, dir)
	ahead := hex.Add(lead, dir)

	if !hex.IsOnBoard(ahead) {
		return reject(ReasonMoveOffBoard)
	}

	ok := Validation{Valid: true, Direction: dir, Kind: Inline, Leader: lead}

	occupant := state.Board.At(ahead)
	switch occupant {
	case NoPlayer:
		return ok
	case mover:
		return reject(ReasonBlockedByOwnMarble)
	}

	if len(marbles) == 1 {
		return reject(ReasonSingleCannotPush)
	}

	// Sumito: count the contiguous opposing line.
	count := 0
	scan := ahead
	for state.Board.At(scan) == occupant {
		count++
		scan = hex.Add(scan, dir)
	}
	if count >= len(marbles) {
		return reject(ReasonInsufficientMajority)
	}
	if state.Board.At(scan) == mover {
		return reject(ReasonBlockedBehindOpponent)
	}

	ok.Pushed = count
	return ok
}

func validateSideStep(state *GameState, marbles []hex.Coord, dir hex.Coord) Validation {
	for _, m := range marbles {
		dest := hex.Add(m, dir)
		if !hex.IsOnBoard(dest) {
			return reject(ReasonOffBoardSideStep)
		}
		if state.Board.At(dest) != NoPlayer {
			return reject(ReasonOccupiedSideStepTarget)
		}
	}
	return Validation{Valid: true, Direction: dir, Kind: Broadside, Leader: leader(marbles, dir)}
}

// ApplyMove returns the state after moving marbles toward target. An illegal
// move returns state unchanged.
func ApplyMove(state GameState, marbles []hex.Coord, target hex.Coord) GameState {
	next, _ := Apply(state, marbles, target)
	return next
}

// Apply is ApplyMove that also reports the validation it ran.
func Apply(state GameState, marbles []hex.Coord, target hex.Coord) (GameState, Validation) {
	v := ValidateMove(state, marbles, target)
	if !v.Valid {
		return state, v
	}

	dir := v.Direction
	mover := state.CurrentPlayer
	opponent := mover.Opponent()
	board := state.Board
	captured := 0

	if v.Pushed > 0 {
		chain := make([]hex.Coord, 0, v.Pushed)
		for c := hex.Add(v.Leader, dir); board.At(c) == opponent; c = hex.Add(c, dir) {
			chain = append(chain, c)
		}
		// farthest first so no marble lands on one that has not moved yet
		for i := len(chain) - 1; i >= 0; i-- {
			board.Clear(chain[i])
			if !board.Set(hex.Add(chain[i], dir), opponent) {
				captured++
			}
		}
	}

	for _, m := range marbles {
		board.Clear(m)
	}
	for _, m := range marbles {
		board.Set(hex.Add(m, dir), mover)
	}

	next := state
	next.Board = board
	next.Score = state.Score.add(mover, captured)
	next.CurrentPlayer = opponent
	next.Winner = winnerOf(next.Score)
	next.History = append(slices.Clip(state.History), Move{
		Number:    len(state.History) + 1,
		Player:    mover,
		Marbles:   slices.Clone(marbles),
		Direction: dir,
		Kind:      v.Kind,
		Pushed:    v.Pushed,
		Captured:  captured,
	})
	return next, v
}

func winnerOf(s Score) Player {
	switch {
	case s.Black >= WinningScore:
		return Black
	case s.White >= WinningScore:
		return White
	}
	return NoPlayer
}

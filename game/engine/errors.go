package engine

import "errors"

// Reason classifies why a move was rejected.
type Reason string

const (
	ReasonEmptySelection         Reason = "empty_selection"
	ReasonTooManyMarbles         Reason = "too_many_marbles"
	ReasonNotOwnMarble           Reason = "not_own_marble"
	ReasonNotAdjacent            Reason = "not_adjacent"
	ReasonMisalignedGroup        Reason = "misaligned_group"
	ReasonBlockedByOwnMarble     Reason = "blocked_by_own_marble"
	ReasonSingleCannotPush       Reason = "single_cannot_push"
	ReasonInsufficientMajority   Reason = "insufficient_majority"
	ReasonBlockedBehindOpponent  Reason = "blocked_behind_opponent"
	ReasonOffBoardSideStep       Reason = "off_board_side_step"
	ReasonOccupiedSideStepTarget Reason = "occupied_side_step_target"
	ReasonMoveOffBoard           Reason = "move_off_board"
)

var reasonMessages = map[Reason]string{
	ReasonEmptySelection:         "No marbles selected",
	ReasonTooManyMarbles:         "Maximum 3 marbles",
	ReasonNotOwnMarble:           "You can only move your own marbles",
	ReasonNotAdjacent:            "Target must be adjacent to selection",
	ReasonMisalignedGroup:        "Selected marbles must form a straight, connected line",
	ReasonBlockedByOwnMarble:     "Blocked by your own marble",
	ReasonSingleCannotPush:       "Single marble cannot push",
	ReasonInsufficientMajority:   "Need majority to push",
	ReasonBlockedBehindOpponent:  "Blocked by your own marble behind opponent",
	ReasonOffBoardSideStep:       "Out of bounds",
	ReasonOccupiedSideStepTarget: "Space occupied",
	ReasonMoveOffBoard:           "Cannot move your own marbles off the board",
}

// Message returns the human-readable text for r.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "Invalid move"
}

// RuleError is a rejected move expressed as an error.
type RuleError struct {
	Reason  Reason
	Message string
}

func (e *RuleError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Reason.Message()
}

// Is matches any RuleError with the same reason.
func (e *RuleError) Is(target error) bool {
	t, ok := target.(*RuleError)
	return ok && t.Reason == e.Reason
}

func ruleError(r Reason) *RuleError { return &RuleError{Reason: r, Message: r.Message()} }

var (
	ErrEmptySelection         = ruleError(ReasonEmptySelection)
	ErrTooManyMarbles         = ruleError(ReasonTooManyMarbles)
	ErrNotOwnMarble           = ruleError(ReasonNotOwnMarble)
	ErrNotAdjacent            = ruleError(ReasonNotAdjacent)
	ErrMisalignedGroup        = ruleError(ReasonMisalignedGroup)
	ErrBlockedByOwnMarble     = ruleError(ReasonBlockedByOwnMarble)
	ErrSingleCannotPush       = ruleError(ReasonSingleCannotPush)
	ErrInsufficientMajority   = ruleError(ReasonInsufficientMajority)
	ErrBlockedBehindOpponent  = ruleError(ReasonBlockedBehindOpponent)
	ErrOffBoardSideStep       = ruleError(ReasonOffBoardSideStep)
	ErrOccupiedSideStepTarget = ruleError(ReasonOccupiedSideStepTarget)
	ErrMoveOffBoard           = ruleError(ReasonMoveOffBoard)
)

var (
	// ErrGameOver is returned when a move is attempted after a winner exists.
	ErrGameOver = errors.New("game is over")
	// ErrNothingToUndo is returned by Undo at the start of a game.
	ErrNothingToUndo = errors.New("nothing to undo")
)

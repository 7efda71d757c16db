// Package engine implements the Abalone rules.
//
// The rules are a pure state transition: ValidateMove decides whether a group
// of one to three marbles may move toward a target cell, and ApplyMove returns
// the resulting GameState without touching its input. Boards are fixed-size
// arrays indexed by hex.Index, so copying a GameState copies its board.
//
// Core Types:
//
// GameState is one snapshot of a game: board, player to move, score, winner
// and the list of applied moves. Validation is the result of ValidateMove and
// carries a Reason when a move is rejected; Validation.Err converts it into a
// *RuleError that matches the Err* sentinels with errors.Is.
//
// GameEngine wraps the pure functions for callers that hold one mutable game.
// It adds undo, turn messages and layout configuration loaded from YAML.
//
// Usage:
//
//	eng := engine.NewEngineWithDefaults()
//	v, err := eng.Move([]hex.Coord{{Q: -1, R: 2}}, hex.Coord{Q: -1, R: 1})
//	if errors.Is(err, engine.ErrBlockedByOwnMarble) {
//		...
//	}
//
// Game Rules:
//
// Players alternately move a straight line of up to three of their marbles one
// cell. Moving along the line may push a shorter line of opposing marbles;
// marbles pushed past the edge are captured. The first player to capture six
// marbles wins.
package engine

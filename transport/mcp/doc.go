// Package mcp exposes the Abalone REST API as Model Context Protocol tools so
// an AI agent can inspect and play a session.
//
// The Client is a thin proxy: every tool call becomes one or two REST calls
// against the api package, and the answer is rendered as text with the board
// drawn row by row.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state, describe_cell
//   - validate_move, move, undo_move, reset_game
//   - move_history
//   - list_configs, game_instructions
//
// Cells are passed as "q,r" strings. Moves name their marbles and either a
// target cell or a compass direction (E, NE, NW, W, SW, SE). A rejected move
// is returned as text with its reason rather than as a tool error.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp

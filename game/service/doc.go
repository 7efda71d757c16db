// Package service provides the business logic layer for the Abalone server.
//
// GameService is what every transport talks to. It resolves sessions and
// layout configurations through the SessionManager and ConfigManager
// interfaces, drives each session's engine.GameEngine, and persists the
// session after every state change.
//
// Rule violations are part of normal play: Move reports them on the
// MoveResult with Success=false and the engine.Reason. Errors are kept for
// lookups that fail (ErrSessionNotFound, ErrConfigNotFound), moves after the
// game is won (engine.ErrGameOver) and Undo at the start of a game
// (engine.ErrNothingToUndo).
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "belgian_daisy")
//	result, err := gameService.Move(ctx, info.ID,
//		[]hex.Coord{{Q: -1, R: 2}}, hex.Coord{Q: -1, R: 1})
package service

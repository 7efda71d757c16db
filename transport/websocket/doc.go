// Package websocket pushes game updates to browsers watching a session.
//
// A Hub keeps the connected clients grouped by session id. After every
// move, undo or reset the API calls BroadcastToSession with the new
// engine.GameState, which reaches each client as a "state_update" frame.
// Service events (push, capture, victory) follow through BroadcastEvent.
// Both send on the caller's goroutine, so frames keep their call order.
//
// Frames are JSON:
//
//	{"session_id": "a3f9", "event": "state_update", "game_state": {...}}
//	{"session_id": "a3f9", "event": "capture", "data": {...}}
//
// Clients connect with /ws?session=<id> and only receive; anything they
// send is discarded. A client whose queue fills up is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
package websocket

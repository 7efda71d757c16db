// Package api provides the HTTP REST API for the Abalone server.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              create a session ({"config_id": "belgian_daisy"})
//   - GET    /api/sessions              list sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}         session info with state and layout
//   - DELETE /api/sessions/{id}         delete a session
//
// Play:
//   - GET  /api/sessions/{id}/state     current GameState
//   - POST /api/sessions/{id}/validate  check a move without playing it
//   - POST /api/sessions/{id}/move      play a move
//   - POST /api/sessions/{id}/select    apply a click to a client-held selection
//   - POST /api/sessions/{id}/undo      take back the last move
//   - POST /api/sessions/{id}/reset     restart from the layout
//   - GET  /api/sessions/{id}/history   paged history (?page=&limit=&order=)
//
// Layouts:
//   - GET  /api/configs                 list layouts
//   - GET  /api/configs/{name}          one layout
//   - POST /api/configs?id=name         store a layout
//
// Misc:
//   - GET /api/health
//   - GET /ws?session={id}              WebSocket push of state updates
//
// Move bodies name the marbles and either a target cell or a compass
// direction:
//
//	{"marbles": [{"q": -1, "r": 2}], "target": {"q": -1, "r": 1}}
//	{"marbles": [{"q": -1, "r": 2}, {"q": 0, "r": 2}], "direction": "NW"}
//
// A move that breaks a rule answers 422 with the MoveResult carrying the
// reason. Unknown sessions and layouts answer 404; moves after the game is
// won and undo at the start answer 409.
package api

// Package session provides session management for the Abalone server.
//
// Manager is a thread-safe map of sessions keyed by lower-cased id. Each
// session owns its own engine.GameEngine, so games never share state.
// Ids are four random hex characters unless the caller supplies one.
//
// With a SessionPersistence attached, sessions are written on creation and
// after every state change, and sessions missing from memory are loaded on
// demand. FilePersistence stores one JSON document per session holding the
// layout name and the full GameState; the undo stack is not persisted.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", configMgr)
//	manager := session.NewManagerWithPersistence(persistence)
//	_ = manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", config)
//	sess, err = manager.Get(sess.ID)
//
// CleanupExpiredSessions drops idle sessions from memory; their files stay
// on disk and are reloaded on the next Get.
package session

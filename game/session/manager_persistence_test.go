package session

import (
	"errors"
	"testing"
	"time"

	"github.com/wricardo/abalone/game/hex"
)

func TestManagerWithPersistence(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(persistence)
	gameConfig := configManager.GetDefault()

	t.Run("Create Session Auto-Saves", func(t *testing.T) {
		if _, err := manager.Create("auto1", gameConfig); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if !persistence.Exists("auto1") {
			t.Error("Session should be persisted on creation")
		}
	})

	t.Run("Get Session Loads from Persistence", func(t *testing.T) {
		if err := manager.DeleteFromMemory("auto1"); err != nil {
			t.Fatalf("Failed to drop session from memory: %v", err)
		}

		session, err := manager.Get("AUTO1")
		if err != nil {
			t.Fatalf("Failed to load session from persistence: %v", err)
		}
		if session.ID != "auto1" {
			t.Errorf("Expected auto1, got %s", session.ID)
		}
		if manager.Count() != 1 {
			t.Errorf("Expected loaded session to be cached, count %d", manager.Count())
		}
	})

	t.Run("Save Method Persists Changes", func(t *testing.T) {
		session, err := manager.Get("auto1")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if _, err := session.Engine.Move([]hex.Coord{{Q: 0, R: 2}}, hex.Coord{Q: 0, R: 1}); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if err := manager.Save("auto1"); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		loaded, err := persistence.Load("auto1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if len(loaded.Engine.GetMoveHistory()) != 1 {
			t.Errorf("Expected 1 move in persisted history, got %d", len(loaded.Engine.GetMoveHistory()))
		}

		if err := manager.Save("missing"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Delete Removes from Persistence", func(t *testing.T) {
		if _, err := manager.Create("del1", gameConfig); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if err := manager.Delete("del1"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if persistence.Exists("del1") {
			t.Error("Session file should be removed on delete")
		}
		if _, err := manager.Get("del1"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Load Persisted Sessions on Startup", func(t *testing.T) {
		fresh := NewManagerWithPersistence(persistence)
		if err := fresh.LoadPersistedSessions(); err != nil {
			t.Fatalf("Failed to load persisted sessions: %v", err)
		}
		if fresh.Count() != 1 {
			t.Errorf("Expected 1 persisted session, got %d", fresh.Count())
		}
		session, err := fresh.Get("auto1")
		if err != nil {
			t.Fatalf("Expected auto1 to be loaded: %v", err)
		}
		if len(session.Engine.GetMoveHistory()) != 1 {
			t.Error("Expected persisted move history to survive restart")
		}
	})

	t.Run("Save All Sessions", func(t *testing.T) {
		session, _ := manager.Get("auto1")
		session.LastAccessedAt = time.Now().Add(time.Hour).Truncate(time.Second)
		if err := manager.SaveAllSessions(); err != nil {
			t.Fatalf("SaveAllSessions failed: %v", err)
		}

		loaded, err := persistence.Load("auto1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}
		if !loaded.LastAccessedAt.Equal(session.LastAccessedAt) {
			t.Errorf("Expected LastAccessedAt %v, got %v", session.LastAccessedAt, loaded.LastAccessedAt)
		}
	})

	t.Run("Expired Sessions Stay on Disk", func(t *testing.T) {
		session, _ := manager.Get("auto1")
		session.LastAccessedAt = time.Now().Add(-2 * time.Hour)
		if removed := manager.CleanupExpiredSessions(time.Hour); removed != 1 {
			t.Errorf("Expected 1 session removed, got %d", removed)
		}
		if _, err := manager.Get("auto1"); err != nil {
			t.Errorf("Expected expired session to reload from disk: %v", err)
		}
	})
}

func TestManagerWithoutPersistence(t *testing.T) {
	manager := NewManager()
	if err := manager.Save("anything"); err != nil {
		t.Errorf("Save without persistence should be a no-op, got %v", err)
	}
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Errorf("LoadPersistedSessions without persistence should be a no-op, got %v", err)
	}
	if err := manager.SaveAllSessions(); err != nil {
		t.Errorf("SaveAllSessions without persistence should be a no-op, got %v", err)
	}
}

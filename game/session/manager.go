package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds id generation; 4 hex characters give 65536 ids.
const maxIDAttempts = 1 << 16

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session with the given ID and configuration. An
// empty id gets a random one.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id != "" && !validSessionID(id) {
		return nil, ErrInvalidSessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		generated, err := m.generateSessionID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			log.Warn().Err(err).Str("session", id).Msg("persist new session")
		}
	}

	return session, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to
// persistence when it is not in memory.
func (m *Manager) Get(id string) (*service.Session, error) {
	key := strings.ToLower(id)

	m.mu.RLock()
	session, exists := m.sessions[key]
	m.mu.RUnlock()
	if exists {
		return session, nil
	}

	if m.persistence != nil && validSessionID(id) && m.persistence.Exists(key) {
		loaded, err := m.persistence.Load(key)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		// another caller may have loaded it first
		if session, exists := m.sessions[key]; exists {
			return session, nil
		}
		m.sessions[key] = loaded
		return loaded, nil
	}

	return nil, ErrSessionNotFound
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all in-memory sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session from memory and persistence
func (m *Manager) Delete(id string) error {
	key := strings.ToLower(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.sessions[key]
	delete(m.sessions, key)

	if m.persistence != nil && validSessionID(id) && m.persistence.Exists(key) {
		if err := m.persistence.Delete(key); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteFromMemory removes a session from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the
// given duration from memory. Persisted copies stay on disk.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of in-memory sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns a random 4-character id not yet in use. Callers
// hold m.mu for writing so the id stays free until it is inserted.
func (m *Manager) generateSessionID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		bytes := make([]byte, 2)
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("generate session id: %w", err)
		}
		id := hex.EncodeToString(bytes)
		if _, taken := m.sessions[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate session id: no free id after %d attempts", maxIDAttempts)
}

// validSessionID accepts ids that are safe to use as file names.
func validSessionID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range sessionIDs {
		key := strings.ToLower(id)
		if _, exists := m.sessions[key]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			log.Warn().Err(err).Str("session", id).Msg("load persisted session")
			continue
		}

		m.sessions[key] = session
		loadedCount++
	}

	if loadedCount > 0 {
		log.Info().Int("count", loadedCount).Msg("loaded persisted sessions")
	}

	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessions := m.List()

	errorCount := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			log.Warn().Err(err).Str("session", session.ID).Msg("save session")
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}

	return nil
}

package application

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

// sessionEntry tracks one live editing session and its last activity.
type sessionEntry struct {
	session    *GallerySession
	lastAccess time.Time
}

// SessionManager is the in-memory registry of live gallery editing
// sessions. Each session is an independent value keyed by its own id, so
// multiple galleries can be edited concurrently in one process without
// cross-talk. Idle sessions are evicted by the sweeper after the TTL.
type SessionManager struct {
	sessions map[string]*sessionEntry
	mu       sync.RWMutex
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}
}

// Open starts a new editing session seeded with the gallery's saved
// entries and returns its id.
func (m *SessionManager) Open(galleryID string, entries []domain.GalleryImageEntry) (string, *GallerySession) {
	session := NewGallerySession(galleryID, entries)
	id := uuid.New().String()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = &sessionEntry{
		session:    session,
		lastAccess: time.Now(),
	}
	return id, session
}

// Get returns a live session and refreshes its activity timestamp.
func (m *SessionManager) Get(sessionID string) (*GallerySession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}
	entry.lastAccess = time.Now()
	return entry.session, true
}

// Close drops a session explicitly (user left the editor or saved).
func (m *SessionManager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
}

// EvictExpired removes sessions idle for longer than the TTL and returns
// how many were dropped.
func (m *SessionManager) EvictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	evicted := 0
	for id, entry := range m.sessions {
		if now.Sub(entry.lastAccess) > m.ttl {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Size returns the number of live sessions.
func (m *SessionManager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

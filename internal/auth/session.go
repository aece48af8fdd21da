// Package auth replaces the original locally-persisted identity flags with
// an explicit session-bound auth context: set at login, cleared at logout,
// read-only everywhere else.
package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role separates storefront customers from back-office admins.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity is the authenticated principal attached to a session. Its absence
// is the sole authorization signal this layer enforces.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// UserID is the identity key used for telemetry and recommendations;
// anonymous sessions report as "guest".
func (id *Identity) UserID() string {
	if id == nil || id.Email == "" {
		return "guest"
	}
	return id.Email
}

type session struct {
	identity  *Identity // nil until login
	expiresAt time.Time
}

const (
	sessionTTL      = 30 * time.Minute
	cleanupInterval = time.Minute
)

// SessionManager issues and resolves session ids. Every visitor gets a
// session (it keys the cart); identity is attached at login.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewSessionManager() *SessionManager {
	m := &SessionManager{
		sessions:    make(map[string]*session),
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *SessionManager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expireSessions()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *SessionManager) expireSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
		}
	}
}

// Create starts a fresh anonymous session and returns its id.
func (m *SessionManager) Create() string {
	id := uuid.New().String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session{expiresAt: time.Now().Add(sessionTTL)}
	return id
}

// Valid reports whether the session exists and has not expired. A hit slides
// the expiry window.
func (m *SessionManager) Valid(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || time.Now().After(s.expiresAt) {
		return false
	}
	s.expiresAt = time.Now().Add(sessionTTL)
	return true
}

// Identity returns the session's identity, or nil for anonymous or unknown
// sessions.
func (m *SessionManager) Identity(id string) *Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok || time.Now().After(s.expiresAt) {
		return nil
	}
	return s.identity
}

// Login attaches an identity to an existing session.
func (m *SessionManager) Login(id string, identity Identity) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || time.Now().After(s.expiresAt) {
		return false
	}
	s.identity = &identity
	s.expiresAt = time.Now().Add(sessionTTL)
	return true
}

// Logout detaches the identity but keeps the session (and its cart) alive.
func (m *SessionManager) Logout(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.identity = nil
	}
}

// Close stops the expiry sweep.
func (m *SessionManager) Close() error {
	close(m.stopCleanup)
	m.wg.Wait()
	return nil
}

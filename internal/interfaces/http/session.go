package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/OthmanASSAS/slotify/internal/application"
)

// AdminSessionCookie is the cookie carrying the admin session token.
const AdminSessionCookie = "admin_session"

const sessionTTL = 12 * time.Hour

type session struct {
	email     string
	expiresAt time.Time
}

// SessionManager keeps admin sessions in memory. Sessions do not survive a
// restart; admins simply log in again.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]session
	now      application.Clock
}

// NewSessionManager creates a new in-memory session manager.
func NewSessionManager(now application.Clock) *SessionManager {
	if now == nil {
		now = time.Now
	}
	return &SessionManager{
		sessions: make(map[string]session),
		now:      now,
	}
}

// Open creates a session for an authenticated admin and returns its token.
func (m *SessionManager) Open(email string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session{
		email:     email,
		expiresAt: m.now().Add(sessionTTL),
	}

	return token, nil
}

// Resolve returns the admin email bound to a token, or false when the token
// is unknown or expired. Expired entries are removed on the spot.
func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return "", false
	}
	if m.now().After(s.expiresAt) {
		delete(m.sessions, token)
		return "", false
	}

	return s.email, true
}

// Close discards a session. Closing an unknown token is a no-op.
func (m *SessionManager) Close(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

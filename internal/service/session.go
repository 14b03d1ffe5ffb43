// internal/service/session.go
package service

import (
	"context"
	"errors"
	"sync"

	"flowfit/coach-app/internal/editor"
	"flowfit/coach-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoSession      = errors.New("no editing session open for this client")
	ErrSessionRevoked = errors.New("editing session was replaced by a newer one")
)

// Session is one coach's checkout of one client's plan. The plan is fetched
// once when the session opens and never re-synchronized; a later save simply
// overwrites whatever is in the store.
type Session struct {
	Token    string
	TenantID string
	ClientID primitive.ObjectID
	Editor   *editor.Editor

	// mu serializes requests within this session; mutations themselves are
	// synchronous and single-threaded.
	mu sync.Mutex
}

// Lock acquires the session for one request.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionManager tracks open editor sessions, one per (tenant, client).
// Opening a session for a client who already has one replaces it — there is
// no cross-session locking, and the last writer wins on save.
type SessionManager struct {
	planRepo repository.PlanRepository

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates a new instance of SessionManager.
func NewSessionManager(planRepo repository.PlanRepository) *SessionManager {
	return &SessionManager{
		planRepo: planRepo,
		sessions: make(map[string]*Session),
	}
}

func sessionKey(tenantID string, clientID primitive.ObjectID) string {
	return tenantID + "/" + clientID.Hex()
}

// Open fetches the client's live plan (a one-shot read) and starts an editor
// on it. A client without a plan gets a fresh editor in the New state.
func (m *SessionManager) Open(ctx context.Context, tenantID string, clientID primitive.ObjectID) (*Session, error) {
	ed := editor.New()

	plan, err := m.planRepo.Get(ctx, tenantID, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := ed.Load(plan); err != nil {
		return nil, err
	}

	session := &Session{
		Token:    uuid.NewString(),
		TenantID: tenantID,
		ClientID: clientID,
		Editor:   ed,
	}

	m.mu.Lock()
	m.sessions[sessionKey(tenantID, clientID)] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns the open session for the client, verifying the caller's token
// so a replaced session cannot keep editing unnoticed.
func (m *SessionManager) Get(tenantID string, clientID primitive.ObjectID, token string) (*Session, error) {
	m.mu.Lock()
	session, ok := m.sessions[sessionKey(tenantID, clientID)]
	m.mu.Unlock()

	if !ok {
		return nil, ErrNoSession
	}
	if token != "" && session.Token != token {
		return nil, ErrSessionRevoked
	}
	return session, nil
}

// Close discards the session. In-memory edits not saved are lost.
func (m *SessionManager) Close(tenantID string, clientID primitive.ObjectID) {
	m.mu.Lock()
	delete(m.sessions, sessionKey(tenantID, clientID))
	m.mu.Unlock()
}

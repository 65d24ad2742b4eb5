package session

import (
	"context"
	"sync"

	"github.com/agrimarket/escrow-client/internal/domain"
)

// User is the identity acting through this client.
type User struct {
	ID   string
	Role domain.Role
}

// RefreshFunc exchanges an expired token for a fresh one. Owned by the
// identity collaborator, not reimplemented here.
type RefreshFunc func(ctx context.Context) (string, error)

// Session holds the current user and access token for the gateway.
type Session struct {
	mu      sync.RWMutex
	user    User
	token   string
	refresh RefreshFunc
}

func New(user User, token string, refresh RefreshFunc) *Session {
	return &Session{user: user, token: token, refresh: refresh}
}

func (s *Session) CurrentUser() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Refresh replaces the stored token via the refresh hook. Called by the
// gateway once per request when the server answers 401.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refresh == nil {
		return s.token, nil
	}
	token, err := s.refresh(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	return token, nil
}

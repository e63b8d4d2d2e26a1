// Package client implements the terminal rendition of the clubhub client:
// a session context backed by a small persistence adapter, a feed renderer
// and an interactive command loop.
package client

import (
	"sync"

	"clubhub/internal/domain"
	"clubhub/internal/dto"
)

// SessionData is the persisted shape of a logged-in session.
type SessionData struct {
	Token string       `json:"token"`
	User  dto.UserView `json:"user"`
}

// Persistence stores the session between runs.
type Persistence interface {
	Load() (*SessionData, error)
	Save(SessionData) error
	Clear() error
}

// Session holds the current user and discriminant. It is seeded from the
// persistence adapter once and mirrored back on every login and logout.
type Session struct {
	mu    sync.RWMutex
	store Persistence
	data  *SessionData
}

// NewSession restores any persisted session. A missing or unreadable
// session file starts the client logged out.
func NewSession(store Persistence) *Session {
	s := &Session{store: store}
	if data, err := store.Load(); err == nil && data != nil && data.Token != "" {
		s.data = data
	}
	return s
}

func (s *Session) Login(token string, user dto.UserView) error {
	data := SessionData{Token: token, User: user}
	s.mu.Lock()
	s.data = &data
	s.mu.Unlock()
	return s.store.Save(data)
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data != nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return ""
	}
	return s.data.Token
}

// User returns the cached user; ok is false when logged out.
func (s *Session) User() (dto.UserView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return dto.UserView{}, false
	}
	return s.data.User, true
}

// IsClub reports the cached discriminant. It is not re-checked against the
// server; the API rejects non-club posts on its own.
func (s *Session) IsClub() bool {
	u, ok := s.User()
	return ok && u.Type == domain.UserTypeClub
}

// DisplayName is the identity shown in the prompt header.
func (s *Session) DisplayName() string {
	u, ok := s.User()
	if !ok {
		return "guest"
	}
	switch {
	case u.Type == domain.UserTypeClub && u.ClubName != "":
		return u.ClubName
	case u.Type == domain.UserTypeClub:
		return u.Username
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

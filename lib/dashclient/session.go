package dashclient

import (
	"context"
	"sync"

	"pmfin-backend/lib/navigation"
	"pmfin-backend/models"
	userapimodels "pmfin-backend/models/api/user"
)

// Session is the signed-in user state passed explicitly to whatever needs it.
// Until Load or Set completes the session is loading and every gate answers Pending.
type Session struct {
	tree navigation.Tree

	mu   sync.RWMutex
	user *userapimodels.Session
}

func NewSession(tree navigation.Tree) *Session {
	return &Session{tree: tree}
}

// Load fetches the current user from the server. On failure the session stays loading.
func (s *Session) Load(ctx context.Context, c *Client) error {
	user, err := c.GetSession(ctx)
	if err != nil {
		return err
	}
	s.Set(user)
	return nil
}

func (s *Session) Set(user userapimodels.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *Session) User() (userapimodels.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return userapimodels.Session{}, false
	}
	return *s.user, true
}

// Role is nil while the session is loading.
func (s *Session) Role() *models.UserRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	role := s.user.Role
	return &role
}

func (s *Session) CanAccess(path string) navigation.Decision {
	return s.tree.Decide(path, s.Role())
}

// Menu is empty while the session is loading.
func (s *Session) Menu() navigation.Tree {
	role := s.Role()
	if role == nil {
		return navigation.Tree{}
	}
	return s.tree.Visible(*role)
}

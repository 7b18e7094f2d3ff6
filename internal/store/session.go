package store

import (
	"sync"

	"pub-pocket/internal/model"
)

// Session holds the per-login client state: where the backend lives, the
// auth token and role it handed out, the offline flag, the dish currently
// being viewed, and the one-shot "favourites already pulled" latch.
type Session struct {
	mu         sync.Mutex
	baseURL    string
	token      string
	role       model.UserRole
	offline    bool
	favePulled bool
	selected   *model.Food
}

// NewSession creates a session pointed at the given backend address
// (host:port, no scheme).
func NewSession(baseURL string) *Session {
	return &Session{baseURL: baseURL}
}

// SetBaseURL changes the backend address.
func (s *Session) SetBaseURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = url
}

// BaseURL returns the backend address.
func (s *Session) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseURL
}

// SetToken stores the auth token from a login response.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the auth token, or "" before login.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetRole stores the user role from a login response.
func (s *Session) SetRole(role model.UserRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

// Role returns the user role.
func (s *Session) Role() model.UserRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// SetOffline flips the degraded-mode flag. There is no automatic recovery;
// the flag stays set until the user logs in again.
func (s *Session) SetOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = offline
}

// Offline reports whether the client is in offline mode.
func (s *Session) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// SelectFood stashes the dish being handed from a list screen to a detail
// screen.
func (s *Session) SelectFood(dish model.Food) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := dish
	s.selected = &cp
}

// SelectedFood returns a copy of the stashed dish, or nil.
func (s *Session) SelectedFood() *model.Food {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

// ClearSelectedFood drops the stashed dish.
func (s *Session) ClearSelectedFood() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// CheckFavePulled returns whether the favourites list was already pulled
// this session and latches the flag to true. The first caller gets false
// and fetches; everyone after gets true and skips.
func (s *Session) CheckFavePulled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.favePulled
	s.favePulled = true
	return prev
}

// Reset clears everything except the backend address, returning the
// session to its pre-login state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.role = ""
	s.offline = false
	s.favePulled = false
	s.selected = nil
}

package apiclient

import "sync"

// Session is the single source of truth for the auth token. Every client
// call reads the token from here, so logging out in one place logs out
// every caller sharing the session.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

// DefaultSession is shared by clients that are not given their own.
var DefaultSession = NewSession()

func (s *Session) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsValid() bool {
	return s.Token() != ""
}

package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const tokenLength = 16

type Session struct {
	Username    string
	Token       string
	LastUpdated time.Time
}

// Sessions is the process-wide access token registry. A username owns at
// most one session; login renews the timestamp but never rotates the
// token value. Validation is a pure read: browsing a protected route
// does not extend the session, only another login does.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	byUser  map[string]*Session
	byToken map[string]*Session
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:     ttl,
		now:     time.Now,
		byUser:  make(map[string]*Session),
		byToken: make(map[string]*Session),
	}
}

// WithClock replaces the time source, for tests.
func (s *Sessions) WithClock(now func() time.Time) *Sessions {
	s.now = now
	return s
}

// IssueOrRenew returns the token for username, creating one on first
// login and bumping LastUpdated on every later one.
func (s *Sessions) IssueOrRenew(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.byUser[username]; ok {
		sess.LastUpdated = s.now()
		return sess.Token
	}

	sess := &Session{
		Username:    username,
		Token:       newToken(),
		LastUpdated: s.now(),
	}
	s.byUser[username] = sess
	s.byToken[sess.Token] = sess
	return sess.Token
}

// Validate resolves a token to its username. Expired or unknown tokens
// fail; expired sessions stay in the registry until evicted.
func (s *Sessions) Validate(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byToken[token]
	if !ok {
		return "", false
	}
	if s.now().Sub(sess.LastUpdated) >= s.ttl {
		return "", false
	}
	return sess.Username, true
}

// EvictExpired drops sessions past their validity window and reports how
// many were removed. Validate semantics are the same with or without the
// sweep running.
func (s *Sessions) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for token, sess := range s.byToken {
		if now.Sub(sess.LastUpdated) >= s.ttl {
			delete(s.byToken, token)
			delete(s.byUser, sess.Username)
			n++
		}
	}
	return n
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}

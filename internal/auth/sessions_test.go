package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(ttl time.Duration) (*Sessions, *time.Time) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(ttl).WithClock(func() time.Time { return now })
	return s, &now
}

func TestSessions_IssueOrRenewKeepsTokenValue(t *testing.T) {
	s, _ := newTestSessions(15 * time.Minute)

	first := s.IssueOrRenew("greenlion235")
	require.Len(t, first, 16)

	second := s.IssueOrRenew("greenlion235")
	assert.Equal(t, first, second, "renewal must not rotate the token")
}

func TestSessions_TokensAreDistinctPerUser(t *testing.T) {
	s, _ := newTestSessions(15 * time.Minute)

	a := s.IssueOrRenew("greenlion235")
	b := s.IssueOrRenew("lazywolf342")
	assert.NotEqual(t, a, b)
}

func TestSessions_ValidateWindow(t *testing.T) {
	s, now := newTestSessions(15 * time.Minute)

	token := s.IssueOrRenew("greenlion235")

	username, ok := s.Validate(token)
	require.True(t, ok)
	assert.Equal(t, "greenlion235", username)

	*now = now.Add(15*time.Minute - time.Second)
	_, ok = s.Validate(token)
	assert.True(t, ok, "just inside the window")

	*now = now.Add(2 * time.Second)
	_, ok = s.Validate(token)
	assert.False(t, ok, "just past the window")
}

func TestSessions_ValidateDoesNotRenew(t *testing.T) {
	s, now := newTestSessions(15 * time.Minute)

	token := s.IssueOrRenew("greenlion235")

	// Validate repeatedly right up to the deadline; none of these reads
	// may push the expiry out.
	*now = now.Add(14 * time.Minute)
	_, ok := s.Validate(token)
	require.True(t, ok)

	*now = now.Add(2 * time.Minute)
	_, ok = s.Validate(token)
	assert.False(t, ok)
}

func TestSessions_LoginRenewalExtendsWindow(t *testing.T) {
	s, now := newTestSessions(15 * time.Minute)

	token := s.IssueOrRenew("greenlion235")

	*now = now.Add(14 * time.Minute)
	renewed := s.IssueOrRenew("greenlion235")
	require.Equal(t, token, renewed)

	*now = now.Add(14 * time.Minute)
	_, ok := s.Validate(token)
	assert.True(t, ok, "renewal restarted the window")
}

func TestSessions_UnknownTokenRejected(t *testing.T) {
	s, _ := newTestSessions(15 * time.Minute)
	s.IssueOrRenew("greenlion235")

	_, ok := s.Validate("5avX40M3BB5iptJc")
	assert.False(t, ok)
}

func TestSessions_EvictExpired(t *testing.T) {
	s, now := newTestSessions(15 * time.Minute)

	stale := s.IssueOrRenew("lazywolf342")

	*now = now.Add(10 * time.Minute)
	fresh := s.IssueOrRenew("greenlion235")

	*now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, s.EvictExpired())

	_, ok := s.Validate(stale)
	assert.False(t, ok)
	_, ok = s.Validate(fresh)
	assert.True(t, ok)

	// Evicted user gets a brand new token on next login.
	next := s.IssueOrRenew("lazywolf342")
	assert.NotEqual(t, stale, next)
}

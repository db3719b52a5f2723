package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// MemStore holds the users decoded from users.json. The credential set
// is immutable after load.
type MemStore struct {
	byUsername map[string]User
}

func NewMemStore(users []User) *MemStore {
	s := &MemStore{byUsername: make(map[string]User, len(users))}
	for _, u := range users {
		s.byUsername[u.Username] = u
	}
	return s
}

func LoadFile(path string) (*MemStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return NewMemStore(users), nil
}

func (s *MemStore) Len() int { return len(s.byUsername) }

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) Get(_ context.Context, username string) (User, bool, error) {
	u, ok := s.byUsername[username]
	return u, ok, nil
}

func (s *MemStore) Verify(_ context.Context, username, password string) (User, error) {
	u, ok := s.byUsername[username]
	if !ok || u.Password != password {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

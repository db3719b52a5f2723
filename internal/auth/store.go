package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserStore is the read-only credential list. Verify is an exact,
// case-sensitive comparison of both fields.
type UserStore interface {
	Get(ctx context.Context, username string) (User, bool, error)
	Verify(ctx context.Context, username, password string) (User, error)
	Ping(ctx context.Context) error
}

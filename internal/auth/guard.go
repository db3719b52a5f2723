package auth

import "sync"

// Guard counts consecutive failed logins per username. Reaching the
// limit locks the username out until a success resets the counter; there
// is no time-based cooldown.
type Guard struct {
	mu    sync.Mutex
	limit int
	fails map[string]int
}

func NewGuard(limit int) *Guard {
	return &Guard{
		limit: limit,
		fails: make(map[string]int),
	}
}

func (g *Guard) Attempts(username string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fails[username]
}

func (g *Guard) Locked(username string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fails[username] >= g.limit
}

func (g *Guard) RecordFailure(username string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fails[username]++
}

func (g *Guard) RecordSuccess(username string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fails[username] = 0
}

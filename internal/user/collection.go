package user

import (
	"context"
	"sync"
)

// FetchFunc loads the full collection from the store.
type FetchFunc func(ctx context.Context) []User

// Collection is a view's cached copy of the store. It is replaced wholesale
// on every refresh and never patched locally.
//
// Each refresh takes a generation number when it starts; a result is only
// kept if no later-started refresh has already landed, so a slow fetch
// cannot overwrite fresher data.
type Collection struct {
	mu       sync.RWMutex
	users    []User
	started  uint64
	applied  uint64
	inFlight int
}

func NewCollection() *Collection {
	return &Collection{users: []User{}}
}

// Refresh runs fetch and stores its result unless a newer refresh finished
// first. It reports whether the result was kept.
func (c *Collection) Refresh(ctx context.Context, fetch FetchFunc) bool {
	c.mu.Lock()
	c.started++
	gen := c.started
	c.inFlight++
	c.mu.Unlock()

	users := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	if gen < c.applied {
		return false
	}
	if users == nil {
		users = []User{}
	}
	c.users = users
	c.applied = gen
	return true
}

// Snapshot returns a copy of the cached records.
func (c *Collection) Snapshot() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	users := make([]User, len(c.users))
	copy(users, c.users)
	return users
}

// Find returns the cached record with id.
func (c *Collection) Find(id string) (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, u := range c.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Loading reports whether a refresh is outstanding.
func (c *Collection) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight > 0
}

// Generation is the generation of the data currently held.
func (c *Collection) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.applied
}

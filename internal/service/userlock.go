package service

import "sync"

// userLocks serializes operations per user id. Two concurrent actions for
// the same user (verification runs, quiz answers) take the same mutex;
// different users never contend. Locks are never removed — the per-user
// footprint is one mutex, bounded by the user population.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (u *userLocks) lock(userID string) *sync.Mutex {
	u.mu.Lock()
	m, ok := u.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		u.locks[userID] = m
	}
	u.mu.Unlock()

	m.Lock()
	return m
}

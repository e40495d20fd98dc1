package memory

import (
	"context"
	"sync"
	"time"
)

// Locker is a process-local stand-in for the Redis lock.
type Locker struct {
	mu    sync.Mutex
	held  map[string]lease
	clock func() time.Time
}

type lease struct {
	token   string
	expires time.Time
}

func NewLocker() *Locker {
	return &Locker{held: map[string]lease{}, clock: time.Now}
}

func (l *Locker) AcquireLock(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if cur, ok := l.held[key]; ok && now.Before(cur.expires) {
		return false, nil
	}
	l.held[key] = lease{token: value, expires: now.Add(ttl)}
	return true, nil
}

func (l *Locker) ReleaseLock(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.held[key]; ok && cur.token == value {
		delete(l.held, key)
	}
	return nil
}

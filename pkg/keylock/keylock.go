// Package keylock provides mutual exclusion keyed by string.
//
// Callers holding different keys never contend. Entries are reference
// counted and dropped once no goroutine holds or waits for them, so the map
// does not grow with every email ever seen.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{} // buffered(1): a token in the channel means locked
	refs int
}

// Locker hands out per-key locks. The zero value is ready to use.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New returns an empty Locker.
func New() *Locker {
	return &Locker{}
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entries == nil {
		l.entries = make(map[string]*entry)
	}
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// Lock blocks until key is held or ctx is done. On success the returned
// function releases the lock; it must be called exactly once.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquire(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

// Len reports how many keys are currently held or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

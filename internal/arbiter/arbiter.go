// Package arbiter decides which reservation-creation workflows may run at the same time.
package arbiter

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Arbiter grants exclusive access for a key. The returned release func must be called
// exactly once on every exit path.
type Arbiter interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Global serializes every caller regardless of key. At most one holder exists
// process-wide, which also serializes bookings of unrelated screenings.
type Global struct {
	sem *semaphore.Weighted
}

func NewGlobal() *Global {
	return &Global{sem: semaphore.NewWeighted(1)}
}

func (g *Global) Acquire(ctx context.Context, _ string) (func(), error) {
	err := g.sem.Acquire(ctx, 1)
	if err != nil {
		return nil, err
	}

	var once sync.Once

	return func() { once.Do(func() { g.sem.Release(1) }) }, nil
}

// Keyed serializes callers sharing a key and lets different keys proceed in parallel.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	sem  *semaphore.Weighted
	refs int
}

func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[string]*keyedEntry)}
}

func (k *Keyed) Acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.entries[key]
	if !ok {
		entry = &keyedEntry{sem: semaphore.NewWeighted(1)}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	err := entry.sem.Acquire(ctx, 1)
	if err != nil {
		k.unref(key, entry)
		return nil, err
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			entry.sem.Release(1)
			k.unref(key, entry)
		})
	}, nil
}

func (k *Keyed) unref(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(k.entries, key)
	}
}

func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.entries)
}

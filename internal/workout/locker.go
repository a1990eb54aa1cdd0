package workout

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// SessionLocker serializes mutations of one session. The returned unlock func must be called once done.
type SessionLocker interface {
	Lock(ctx context.Context, sessionID uuid.UUID) (unlock func(), err error)
}

// LocalLocker is an in-process keyed mutex. Entries are dropped when nobody holds or waits for them.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[uuid.UUID]*lockEntry),
	}
}

func (l *LocalLocker) Lock(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(sessionID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.release(sessionID, entry)
		})
	}, nil
}

func (l *LocalLocker) release(sessionID uuid.UUID, entry *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, sessionID)
	}
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

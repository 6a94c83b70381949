package lock

import (
	"context"
	"sync"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

// localLocker is an in-process keyed mutex. Entries are dropped once nobody waits on them.
type localLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

func NewLocalLocker() Locker {
	return &localLocker{locks: make(map[string]*keyLock)}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	kl := l.acquireRef(key)

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}
	return l.unlocker(key, kl), nil
}

func (l *localLocker) TryLock(ctx context.Context, key string) (func(), error) {
	kl := l.acquireRef(key)

	select {
	case kl.ch <- struct{}{}:
		return l.unlocker(key, kl), nil
	default:
		l.release(key, kl)
		return nil, ErrNotObtained
	}
}

func (l *localLocker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (l *localLocker) unlocker(key string, kl *keyLock) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}
}

func (l *localLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

package tpms

import "sync"

// TireLocks hands out one mutex per tire id. Entries are reference counted and
// dropped once nobody holds or waits on them. The zero value is ready to use.
type TireLocks struct {
	mu    sync.Mutex
	locks map[string]*tireLock
}

type tireLock struct {
	mu   sync.Mutex
	refs int
}

// Lock blocks until the tire is free and returns the matching unlock func.
func (l *TireLocks) Lock(tireID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*tireLock)
	}
	tl, ok := l.locks[tireID]
	if !ok {
		tl = &tireLock{}
		l.locks[tireID] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			tl.mu.Unlock()

			l.mu.Lock()
			tl.refs--
			if tl.refs == 0 {
				delete(l.locks, tireID)
			}
			l.mu.Unlock()
		})
	}
}

// size is the number of live entries.
func (l *TireLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

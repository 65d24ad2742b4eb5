package locker

import "sync"

// InFlightLocker rejects overlapping mutating requests for the same entity id.
// This is a client-side guard against double-taps, not a distributed lock;
// the server's own idempotency is the real safety net.
type InFlightLocker struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewInFlightLocker() *InFlightLocker {
	return &InFlightLocker{inFlight: make(map[string]struct{})}
}

// TryAcquire returns false when an operation for id is already running.
func (l *InFlightLocker) TryAcquire(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.inFlight[id]; busy {
		return false
	}
	l.inFlight[id] = struct{}{}
	return true
}

func (l *InFlightLocker) Release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, id)
}

package ignition

import (
	"sync"
	"time"
)

// CheckFailure is one retained status-check failure.
type CheckFailure struct {
	Err error
	At  time.Time
}

// failureRing is a thread-safe ring buffer of recent status-check failures.
type failureRing struct {
	mu       sync.RWMutex
	failures []CheckFailure
	size     int
	head     int
	count    int
}

// newFailureRing creates a failure ring with the given capacity.
// If size is 0, retention is disabled.
func newFailureRing(size int) *failureRing {
	if size <= 0 {
		return nil
	}
	return &failureRing{
		failures: make([]CheckFailure, size),
		size:     size,
	}
}

// push records a failure, evicting the oldest when full.
func (r *failureRing) push(err error, at time.Time) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures[r.head] = CheckFailure{Err: err, At: at}
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns retained failures, oldest first.
func (r *failureRing) all() []CheckFailure {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]CheckFailure, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.failures[(start+i)%r.size]
	}
	return result
}

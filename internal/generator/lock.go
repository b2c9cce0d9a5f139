package generator

import "sync/atomic"

// RunLock provides non-blocking mutual exclusion between Generate calls
// on the same Generator. Overlapping whole-generator invocations are not
// supported mid-run, so a second caller fails fast instead of queueing.
type RunLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired.
func (l *RunLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the caller that successfully acquired it.
func (l *RunLock) Release() {
	l.state.Store(0)
}

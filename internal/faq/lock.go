package faq

import "sync/atomic"

// reloadLock is a non-blocking mutex guarding index rebuilds.
// A second rebuild is rejected rather than queued.
type reloadLock struct {
	state atomic.Int32 // 0 = idle, 1 = rebuilding
}

// TryAcquire attempts to acquire the lock without blocking
func (l *reloadLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *reloadLock) Release() {
	l.state.Store(0)
}

// Held reports whether a rebuild is running
func (l *reloadLock) Held() bool {
	return l.state.Load() == 1
}

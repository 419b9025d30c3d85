package storage

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// ContextMutex is a context-aware mutex that can be cancelled
// It uses semaphore.Weighted under the hood to support context cancellation
type ContextMutex struct {
	sem *semaphore.Weighted
}

// NewContextMutex creates a new context-aware mutex
func NewContextMutex() *ContextMutex {
	return &ContextMutex{
		sem: semaphore.NewWeighted(1),
	}
}

// Lock acquires the lock, blocking until it is available or the context is cancelled
func (m *ContextMutex) Lock(ctx context.Context) error {
	return m.sem.Acquire(ctx, 1)
}

// TryLock attempts to acquire the lock without blocking
func (m *ContextMutex) TryLock() bool {
	return m.sem.TryAcquire(1)
}

// Unlock releases the lock
func (m *ContextMutex) Unlock() {
	m.sem.Release(1)
}

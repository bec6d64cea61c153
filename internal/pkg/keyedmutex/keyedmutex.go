// Package keyedmutex serializes operations that share a string key while
// letting operations on different keys run concurrently.
//
// Every key maps to the ticket of the most recently queued operation. A new
// caller installs its own ticket as the tail and waits for the previous one to
// close, so callers on the same key run in the order they called Lock. The map
// entry is dropped when the last queued operation finishes, which bounds
// memory to the keys currently in use.
//
// Locks are not reentrant: locking a key that the calling operation already
// holds deadlocks. Queue depth per key is unbounded.
package keyedmutex

import (
	"context"
	"sync"
	"time"
)

type Mutex struct {
	mu     sync.Mutex
	tails  map[string]chan struct{}
	onWait func(time.Duration)
}

type Option func(*Mutex)

// WithWaitObserver reports how long each contended Lock waited for its turn.
func WithWaitObserver(fn func(time.Duration)) Option {
	return func(m *Mutex) {
		m.onWait = fn
	}
}

func New(opts ...Option) *Mutex {
	m := &Mutex{
		tails: make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lock blocks until every operation queued earlier on key has released it.
// The returned unlock func is idempotent.
//
// If ctx ends while waiting, Lock returns ctx.Err() and the queued ticket is
// handed on as soon as the predecessor finishes, so later callers are not
// stranded.
func (m *Mutex) Lock(ctx context.Context, key string) (func(), error) {
	prev, ticket := m.enqueue(key)

	if prev != nil {
		start := time.Now()
		select {
		case <-prev:
		case <-ctx.Done():
			go func() {
				<-prev
				m.finish(key, ticket)
			}()
			return nil, ctx.Err()
		}
		if m.onWait != nil {
			m.onWait(time.Since(start))
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { m.finish(key, ticket) })
	}, nil
}

// Len returns the number of keys currently held or awaited.
func (m *Mutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tails)
}

func (m *Mutex) enqueue(key string) (prev, ticket chan struct{}) {
	ticket = make(chan struct{})

	m.mu.Lock()
	prev = m.tails[key]
	m.tails[key] = ticket
	m.mu.Unlock()

	return prev, ticket
}

func (m *Mutex) finish(key string, ticket chan struct{}) {
	close(ticket)

	m.mu.Lock()
	if m.tails[key] == ticket {
		delete(m.tails, key)
	}
	m.mu.Unlock()
}

// Do runs fn while holding key. The lock is released even when fn returns an
// error or panics.
func Do[T any](ctx context.Context, m *Mutex, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	unlock, err := m.Lock(ctx, key)
	if err != nil {
		return zero, err
	}
	defer unlock()

	return fn(ctx)
}

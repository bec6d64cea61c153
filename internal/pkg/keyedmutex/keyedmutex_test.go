//go:build unit

package keyedmutex_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"course-checkout/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SameKeyNeverOverlaps(t *testing.T) {
	m := keyedmutex.New()
	ctx := context.Background()

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := keyedmutex.Do(ctx, m, "evt", func(context.Context) (struct{}, error) {
				n := active.Add(1)
				for {
					cur := maxActive.Load()
					if n <= cur || maxActive.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(time.Duration(i%4) * time.Millisecond)
				active.Add(-1)
				return struct{}{}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load(), "operations on one key must not overlap")
	assert.Equal(t, 0, m.Len(), "lock entries should be removed once drained")
}

func TestDo_RunsInSubmissionOrder(t *testing.T) {
	m := keyedmutex.New()
	ctx := context.Background()

	unlock, err := m.Lock(ctx, "k")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := range 5 {
		before := m.Tail("k")
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = keyedmutex.Do(ctx, m, "k", func(context.Context) (int, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return i, nil
			})
		}()
		require.Eventually(t, func() bool { return m.Tail("k") != before }, time.Second, time.Millisecond,
			"goroutine %d should have queued", i)
	}

	unlock()
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestDo_DifferentKeysRunConcurrently(t *testing.T) {
	m := keyedmutex.New()
	ctx := context.Background()

	unlockA, err := m.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := keyedmutex.Do(ctx, m, "b", func(context.Context) (string, error) {
			return "b", nil
		})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("operation on key b was blocked by key a")
	}
	assert.Equal(t, 1, m.Len())
}

func TestDo_FailureDoesNotPoisonChain(t *testing.T) {
	m := keyedmutex.New()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := keyedmutex.Do(ctx, m, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	func() {
		defer func() { _ = recover() }()
		_, _ = keyedmutex.Do(ctx, m, "k", func(context.Context) (int, error) {
			panic("handler exploded")
		})
	}()

	got, err := keyedmutex.Do(ctx, m, "k", func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 0, m.Len())
}

func TestLock_ContextCancelledWhileWaiting(t *testing.T) {
	m := keyedmutex.New()

	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = m.Lock(ctx, "k")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	acquired := make(chan struct{})
	go func() {
		unlockThird, err := m.Lock(context.Background(), "k")
		if assert.NoError(t, err) {
			unlockThird()
		}
		close(acquired)
	}()

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter queued behind a cancelled caller was stranded")
	}
	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, time.Millisecond)
}

func TestLock_UnlockIsIdempotent(t *testing.T) {
	m := keyedmutex.New()

	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
	assert.NotPanics(t, unlock)
	assert.Equal(t, 0, m.Len())
}

func TestWithWaitObserver_ReportsContendedWaits(t *testing.T) {
	var waits atomic.Int32
	m := keyedmutex.New(keyedmutex.WithWaitObserver(func(time.Duration) { waits.Add(1) }))

	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)
	before := m.Tail("k")

	done := make(chan struct{})
	go func() {
		defer close(done)
		u, err := m.Lock(context.Background(), "k")
		if assert.NoError(t, err) {
			u()
		}
	}()
	require.Eventually(t, func() bool { return m.Tail("k") != before }, time.Second, time.Millisecond)
	unlock()
	<-done

	assert.Equal(t, int32(1), waits.Load())
}

package locker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireRelease(t *testing.T) {
	l := NewInFlightLocker()

	assert.True(t, l.TryAcquire("e1"))
	assert.False(t, l.TryAcquire("e1"), "double-tap must be rejected")
	assert.True(t, l.TryAcquire("e2"), "other entities are independent")

	l.Release("e1")
	assert.True(t, l.TryAcquire("e1"))
}

func TestOnlyOneWinnerUnderContention(t *testing.T) {
	l := NewInFlightLocker()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryAcquire("e1") {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

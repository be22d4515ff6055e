package lockmap

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockMap(t *testing.T) {
	m := NewLockMap[int, *int]()

	var (
		wg      sync.WaitGroup
		holders [1000]int32
	)
	for i := 0; i < 10000; i++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()

			l := m.Lock(k)
			defer l.Unlock()

			require.Equal(t, int32(1), atomic.AddInt32(&holders[k], 1))
			runtime.Gosched()
			require.Equal(t, int32(0), atomic.AddInt32(&holders[k], -1))
		}(i % 1000)
	}

	wg.Wait()
	require.Zero(t, m.Len())
}

func TestLockMapValue(t *testing.T) {
	m := NewLockMap[string, int]()

	first := m.Lock("key")
	require.False(t, first.IsSet)

	secondLocked := make(chan *Unlocker[string, int])
	go func() {
		secondLocked <- m.Lock("key")
	}()

	first.Set(42)
	refCount := func() int64 {
		m.globalLock.Lock()
		defer m.globalLock.Unlock()
		return m.lockMap["key"].refCount
	}
	for refCount() < 2 {
		runtime.Gosched()
	}
	first.Unlock()

	second := <-secondLocked
	require.True(t, second.IsSet)
	require.Equal(t, 42, second.Value)
	second.Unlock()
	require.Zero(t, m.Len())

	third := m.Lock("key")
	require.False(t, third.IsSet)
	third.Unlock()
}

package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Capacity(t *testing.T) {
	s := New[int](2, time.Minute)
	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3)

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok, "oldest call should be evicted")

	v, ok := s.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestStore_TTL(t *testing.T) {
	s := New[string](10, 20*time.Millisecond)
	s.Put("CA1", "recording")

	_, ok := s.Get("CA1")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := s.Get("CA1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestStore_Update(t *testing.T) {
	s := New[int](10, time.Minute)

	v, err := s.Update("CA1", func(v int, ok bool) (int, bool, error) {
		assert.False(t, ok)
		return v + 1, true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = s.Update("CA1", func(v int, ok bool) (int, bool, error) {
		return 0, true, errors.New("invalid transition")
	})
	require.Error(t, err)
	got, _ := s.Get("CA1")
	assert.Equal(t, 1, got, "failed update must not change the entry")

	_, err = s.Update("CA1", func(v int, ok bool) (int, bool, error) {
		return v, false, nil
	})
	require.NoError(t, err)
	_, ok := s.Get("CA1")
	assert.False(t, ok)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New[int](100, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("CA%d", i%5)
			_, _ = s.Update(id, func(v int, ok bool) (int, bool, error) {
				return v + 1, true, nil
			})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		v, ok := s.Get(fmt.Sprintf("CA%d", i))
		require.True(t, ok)
		assert.Equal(t, 10, v)
	}
}

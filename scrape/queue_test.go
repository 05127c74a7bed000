package scrape_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/reviewskim/scrape"
	"github.com/stretchr/testify/assert"
)

func TestQueue_Push_rejects_duplicate_IDs(t *testing.T) {
	t.Parallel()

	q := scrape.NewQueue(1000, 0.01)

	assert.True(t, q.Push(1300854), "first push should succeed")
	assert.False(t, q.Push(1300854), "duplicate ID should be rejected")
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Pop_returns_oldest_first(t *testing.T) {
	t.Parallel()

	q := scrape.NewQueue(1000, 0.01)
	q.Push(3)
	q.Push(1)
	q.Push(2)

	for _, want := range []int{3, 1, 2} {
		id, ok := q.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, id)
	}

	_, ok := q.Pop()
	assert.False(t, ok, "empty queue should report false")
}

func TestQueue_Push_rejects_IDs_already_popped(t *testing.T) {
	t.Parallel()

	q := scrape.NewQueue(1000, 0.01)
	q.Push(7)
	q.Pop()

	assert.False(t, q.Push(7))
	assert.Zero(t, q.Len())
}

func TestQueue_concurrent_pushes(t *testing.T) {
	t.Parallel()

	q := scrape.NewQueue(1000, 0.01)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := 1; id <= 100; id++ {
				q.Push(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, q.Len())
}

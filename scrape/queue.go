package scrape

import (
	"sync"

	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/bloom"
)

var _ reviewskim.MovieQueue = (*Queue)(nil)

// Queue is an in-memory FIFO of movie IDs with Bloom filter deduplication.
// It is safe for concurrent use by multiple goroutines.
type Queue struct {
	mu   sync.Mutex
	seen *bloom.Filter
	ids  []int
}

// NewQueue creates a new Queue sized for n expected IDs with the given
// false positive rate for deduplication. A false positive drops an ID that
// was never queued.
func NewQueue(n uint, fpRate float64) *Queue {
	return &Queue{seen: bloom.NewFilter(n, fpRate)}
}

// Push adds a movie ID to the back of the queue.
// Returns false if the ID has already been seen.
func (q *Queue) Push(id int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.seen.Test(id) {
		return false
	}
	q.seen.Add(id)
	q.ids = append(q.ids, id)
	return true
}

// Pop removes and returns the oldest queued ID.
// The bool result is false if the queue is empty.
func (q *Queue) Pop() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ids) == 0 {
		return 0, false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

// Len returns the number of IDs in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

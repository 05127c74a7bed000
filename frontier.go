package reviewskim

import "context"

// MovieQueue is a FIFO of movie IDs waiting to be ingested.
// An ID is accepted at most once over the life of the queue.
type MovieQueue interface {
	// Push adds a movie ID to the queue.
	// Returns false if the ID has already been seen.
	Push(id int) bool

	// Pop returns the oldest queued ID.
	// Returns false if the queue is empty.
	Pop() (int, bool)

	// Len returns the number of IDs in the queue.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

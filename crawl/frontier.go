package crawl

import (
	"github.com/fwojciec/cratedocs/bloom"
)

// Frontier sizing for one documentation crawl.
const (
	// frontierExpectedPaths is the expected number of paths for Bloom
	// filter sizing.
	frontierExpectedPaths = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for
	// the enqueue pre-filter.
	frontierFalsePositiveRate = 0.01
)

// Frontier is a FIFO path queue with deduplication for a single crawl.
// The visited set is exact: a path is fetched at most once per crawl. The
// Bloom filter only pre-filters enqueueing, so a false positive can at
// worst skip a candidate link, never cause a duplicate fetch.
//
// A Frontier is owned by one crawl invocation and is not safe for
// concurrent use.
type Frontier struct {
	queue   []string
	queued  *bloom.Filter
	visited map[string]bool
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queued:  bloom.NewFilter(frontierExpectedPaths, frontierFalsePositiveRate),
		visited: make(map[string]bool),
	}
}

// Push enqueues a path unless it has already been queued or visited.
// Returns false if the path was rejected as a duplicate.
func (f *Frontier) Push(path string) bool {
	if f.visited[path] || f.queued.Test(path) {
		return false
	}
	f.queued.Add(path)
	f.queue = append(f.queue, path)
	return true
}

// Pop removes and returns the oldest queued path.
// The bool result is false if the queue is empty.
func (f *Frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	path := f.queue[0]
	f.queue = f.queue[1:]
	return path, true
}

// Visit marks a path as visited. Visited paths are never fetched again
// within the crawl, whether or not the fetch succeeded.
func (f *Frontier) Visit(path string) {
	f.visited[path] = true
}

// Visited reports whether the path has been visited. Membership is an
// exact string match.
func (f *Frontier) Visited(path string) bool {
	return f.visited[path]
}

// VisitedSet returns the visited paths.
func (f *Frontier) VisitedSet() map[string]bool {
	return f.visited
}

// Len returns the number of queued paths.
func (f *Frontier) Len() int {
	return len(f.queue)
}

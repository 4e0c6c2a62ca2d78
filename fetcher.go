package cratedocs

import "context"

// Fetcher retrieves response bodies from URLs.
type Fetcher interface {
	// Fetch retrieves the body at the URL as a string.
	// The context controls timeout and cancellation. Non-success HTTP
	// statuses are returned as errors.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

package publisher

import "context"

// Publisher represents a sink for extracted listings
type Publisher interface {
	// Publish publishes messages under key as one batch. Either every
	// message is published or none is.
	Publish(ctx context.Context, key string, messages ...[]byte) error

	// TrimStreams trims the stream to the configured maximum length
	TrimStreams(ctx context.Context) error

	// Close closes the publisher connection
	Close() error
}

package internal

import (
	"errors"

	"comprende-prod/trademe/services/cache"
	"comprende-prod/trademe/services/publisher"
)

// Dependencies holds the optional services a search run talks to.
// A nil field means the service is disabled.
type Dependencies struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Close releases every service that holds a connection
func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		errs = append(errs, d.Publisher.Close())
	}
	return errors.Join(errs...)
}

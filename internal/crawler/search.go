package crawler

import (
	"context"
	"fmt"

	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
)

// Session is an open page source that must be closed when the search is done
type Session interface {
	Fetcher
	Close() error
}

// OpenFunc opens a new session
type OpenFunc func(ctx context.Context) (Session, error)

// Searcher runs searches over one or more start urls with a single session
type Searcher struct {
	open  OpenFunc
	pager *Pager
}

// NewSearcher creates a searcher that opens sessions with open
func NewSearcher(open OpenFunc, pager *Pager) *Searcher {
	return &Searcher{open: open, pager: pager}
}

// Search paginates every url in order and returns all listings found.
// One session serves every page of every url and is closed before
// Search returns, whether or not the search failed.
func (s *Searcher) Search(ctx context.Context, urls ...string) (listings []Listing, err error) {
	if len(urls) == 0 {
		return nil, apperrors.NewValidation("search", "at least one search url is required")
	}

	session, err := s.open(ctx)
	if err != nil {
		return nil, apperrors.NewNetwork("search", "failed to open session", err)
	}
	defer func() {
		closeErr := session.Close()
		if closeErr == nil {
			return
		}
		if err == nil {
			listings, err = nil, apperrors.NewNetwork("search", "failed to close session", closeErr)
			return
		}
		logger.ForComponent("search").WithError(closeErr).Warn().Msg("Failed to close session after search error")
	}()

	for _, u := range urls {
		found, err := s.pager.Paginate(ctx, u, session)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", u, err)
		}
		listings = append(listings, found...)
	}

	return listings, nil
}

package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
)

// Fetcher returns the rendered markup of a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Pager walks a search's result pages until one comes back empty
type Pager struct {
	extractor *Extractor
	// maxPages stops pagination after that many pages, 0 means no limit
	maxPages int
}

// NewPager creates a pager. maxPages of 0 paginates until the site runs
// out of results.
func NewPager(extractor *Extractor, maxPages int) *Pager {
	return &Pager{extractor: extractor, maxPages: maxPages}
}

// Paginate fetches startURL and every following page, returning the
// listings of all non-empty pages. The first page without listing cards
// ends the search and is not fetched past.
func (p *Pager) Paginate(ctx context.Context, startURL string, fetcher Fetcher) ([]Listing, error) {
	log := logger.ForSearch(startURL)

	var listings []Listing
	currentURL := startURL
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.maxPages > 0 && page > p.maxPages {
			log.Warn().Int("max_pages", p.maxPages).Msg("Page limit reached, stopping search early")
			break
		}

		markup, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d (%s): %w", page, currentURL, err)
		}

		doc, err := ParseDocument(markup)
		if err != nil {
			return nil, err
		}
		if !HasResults(doc) {
			log.Debug().Int("page", page).Msg("No more results")
			break
		}

		found, err := p.extractor.ExtractPage(doc)
		if err != nil {
			return nil, fmt.Errorf("extract page %d (%s): %w", page, currentURL, err)
		}
		listings = append(listings, found...)
		log.Debug().Int("page", page).Int("listings", len(found)).Msg("Extracted page")

		if currentURL, err = NextPageURL(currentURL); err != nil {
			return nil, err
		}
	}

	log.Info().Int("listings", len(listings)).Msg("Search complete")
	return listings, nil
}

// NextPageURL returns rawURL with its page query parameter advanced by
// one. A URL without a page parameter is page 1.
func NextPageURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", apperrors.NewValidation("pager", fmt.Sprintf("invalid page url %q: %v", rawURL, err))
	}

	query := u.Query()
	next := 2
	if current := query.Get("page"); current != "" {
		n, err := strconv.Atoi(current)
		if err != nil {
			return "", apperrors.NewValidation("pager", fmt.Sprintf("page parameter %q is not a number", current))
		}
		next = n + 1
	}
	query.Set("page", strconv.Itoa(next))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

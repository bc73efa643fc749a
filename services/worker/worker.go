package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"comprende-prod/trademe/internal/crawler"
	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
	"comprende-prod/trademe/services/publisher"
)

// PublishKey is the stream field each listing is published under
const PublishKey = "listing"

// Searcher runs a search over start urls
type Searcher interface {
	Search(ctx context.Context, urls ...string) ([]crawler.Listing, error)
}

// Worker runs one search job: search, publish each listing, write the result
type Worker struct {
	searcher  Searcher
	publisher publisher.Publisher
	output    io.Writer
	log       *logger.Logger
}

// NewWorker creates a new worker. pub and output may be nil to skip
// publishing or writing.
func NewWorker(searcher Searcher, pub publisher.Publisher, output io.Writer) *Worker {
	return &Worker{
		searcher:  searcher,
		publisher: pub,
		output:    output,
		log:       logger.ForWorker(),
	}
}

// Run searches urls and hands the listings to the configured sinks.
// A failed search publishes and writes nothing.
func (w *Worker) Run(ctx context.Context, urls ...string) ([]crawler.Listing, error) {
	start := time.Now()

	listings, err := w.searcher.Search(ctx, urls...)
	if err != nil {
		return nil, err
	}
	w.log.Info().
		Int("urls", len(urls)).
		Int("listings", len(listings)).
		Dur("elapsed", time.Since(start)).
		Msg("Search finished")

	if err := w.publish(ctx, listings); err != nil {
		return nil, err
	}
	if err := w.write(listings); err != nil {
		return nil, err
	}

	return listings, nil
}

// publish sends all listings to the publisher in one batch and trims the stream
func (w *Worker) publish(ctx context.Context, listings []crawler.Listing) error {
	if w.publisher == nil {
		return nil
	}

	messages := make([][]byte, 0, len(listings))
	for i, listing := range listings {
		data, err := json.Marshal(listing)
		if err != nil {
			return apperrors.NewPublisher("worker", fmt.Sprintf("marshal listing %d", i), err)
		}
		messages = append(messages, data)
	}
	if len(messages) == 0 {
		return nil
	}

	if err := w.publisher.Publish(ctx, PublishKey, messages...); err != nil {
		return err
	}
	if logger.IsDebugEnabled() {
		w.log.Debug().RawJSON("listing", messages[0]).Int("count", len(messages)).Msg("Published listings")
	}

	if err := w.publisher.TrimStreams(ctx); err != nil {
		w.log.Warn().Err(err).Msg("Failed to trim stream")
	}
	return nil
}

// write encodes listings as an indented JSON array
func (w *Worker) write(listings []crawler.Listing) error {
	if w.output == nil {
		return nil
	}
	if listings == nil {
		listings = []crawler.Listing{}
	}

	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("write listings: %w", err)
	}
	return nil
}

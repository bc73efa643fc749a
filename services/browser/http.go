package browser

import (
	"context"
	"io"
	"net/http"

	"comprende-prod/trademe/helpers"
	"comprende-prod/trademe/internal/crawler"
	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
)

// xhrHeaders make the site answer with its server-rendered markup
var xhrHeaders = map[string]string{
	"x-requested-with": "XMLHttpRequest",
	"accept":           "text/javascript, text/html, application/xml, text/xml, */*",
}

// HTTPSession fetches pages with plain HTTP requests. It only sees markup
// the server renders, so it suits mirrors and tests more than the live site.
type HTTPSession struct {
	client  *http.Client
	headers map[string]string
	log     *logger.Logger
}

// NewHTTPSession creates an HTTP session
func NewHTTPSession(opts Options) *HTTPSession {
	client := &http.Client{Timeout: opts.Timeout}
	if opts.Timeout == 0 {
		client = helpers.DefaultClient
	}

	headers := make(map[string]string, len(xhrHeaders)+1)
	for k, v := range xhrHeaders {
		headers[k] = v
	}
	if opts.UserAgent != "" {
		headers["User-Agent"] = opts.UserAgent
	}

	return &HTTPSession{
		client:  client,
		headers: headers,
		log:     logger.ForBrowser("http"),
	}
}

// OpenHTTPFunc adapts NewHTTPSession to crawler.OpenFunc
func OpenHTTPFunc(opts Options) crawler.OpenFunc {
	return func(ctx context.Context) (crawler.Session, error) {
		return NewHTTPSession(opts), nil
	}
}

// Fetch GETs url and returns its body as UTF-8 text
func (s *HTTPSession) Fetch(ctx context.Context, url string) (string, error) {
	body, err := helpers.FetchWithHeaders(ctx, s.client, url, s.headers)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", apperrors.NewNetwork("http", "failed to read body", err)
	}
	s.log.Debug().Str("url", url).Int("bytes", len(data)).Msg("Fetched page")
	return string(data), nil
}

// Close releases idle connections
func (s *HTTPSession) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

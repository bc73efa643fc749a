package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"comprende-prod/trademe/config"
	"comprende-prod/trademe/internal"
	"comprende-prod/trademe/internal/crawler"
	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
	"comprende-prod/trademe/services/browser"
	"comprende-prod/trademe/services/cache"
	"comprende-prod/trademe/services/publisher"
	"comprende-prod/trademe/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg); err != nil {
		logger.LogError("main", err, "Search failed (retryable: %t)", apperrors.IsRetryable(err))
		stop()
		os.Exit(1)
	}
}

// run executes one search job described by cfg
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.ForComponent("main")

	urls, err := searchURLs(cfg)
	if err != nil {
		return err
	}

	deps, err := initializeServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	output, closeOutput := openOutput(cfg.OutputFile)

	searcher := crawler.NewSearcher(
		openFunc(cfg, deps),
		crawler.NewPager(crawler.NewExtractor(cfg.SiteURL), cfg.MaxPages),
	)

	log.Info().
		Str("environment", cfg.Environment).
		Str("fetch_mode", cfg.FetchMode).
		Strs("urls", urls).
		Msg("Starting search")

	_, err = worker.NewWorker(searcher, deps.Publisher, output).Run(ctx, urls...)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	return err
}

// searchURLs returns the configured start urls, building one from the
// search definition when none are given explicitly.
func searchURLs(cfg *config.Config) ([]string, error) {
	if len(cfg.SearchURLs) > 0 {
		return cfg.SearchURLs, nil
	}

	params := make([]crawler.Param, 0, len(cfg.SearchOptions))
	for _, opt := range cfg.SearchOptions {
		params = append(params, crawler.Param{Key: opt.Key, Value: opt.Value})
	}

	u, err := crawler.MakeURL(cfg.SearchURL, cfg.SearchKind, crawler.Location{
		Region:   cfg.SearchRegion,
		District: cfg.SearchDistrict,
		Suburb:   cfg.SearchSuburb,
	}, params...)
	if err != nil {
		return nil, err
	}
	return []string{u}, nil
}

// openFunc picks the session kind and wraps it with the rate-limit guard
// when a cache is configured.
func openFunc(cfg *config.Config, deps *internal.Dependencies) crawler.OpenFunc {
	opts := browser.Options{
		Flags:     cfg.BrowserFlags,
		Wait:      cfg.BrowserWait,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.FetchTimeout,
	}

	open := browser.OpenChromeFunc(opts)
	if cfg.FetchMode == config.FetchModeHTTP {
		open = browser.OpenHTTPFunc(opts)
	}

	if deps.Cache != nil {
		open = browser.GuardOpen(open, deps.Cache, browser.DefaultBlockKey, cfg.RateLimitWait)
	}
	return open
}

// initializeServices connects the optional cache and publisher
func initializeServices(ctx context.Context, cfg *config.Config) (*internal.Dependencies, error) {
	deps := &internal.Dependencies{}

	if cfg.MemcacheAddr == "" {
		logger.Debug("MEMCACHE_ADDR not set, rate-limit guard disabled")
	} else {
		memcache := cache.NewMemcacheService(cfg.MemcacheAddr)
		if err := memcache.Ping(); err != nil {
			logger.Warn("Memcache at %s unreachable, rate-limit guard disabled: %v", cfg.MemcacheAddr, err)
		} else {
			deps.Cache = memcache
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		}
	}

	if cfg.RedisAddr == "" {
		logger.Debug("REDIS_ADDR not set, publishing disabled")
	} else {
		redisPublisher := publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		if err := redisPublisher.Ping(ctx); err != nil {
			redisPublisher.Close()
			return nil, err
		}
		deps.Publisher = redisPublisher

		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return deps, nil
}

// openOutput returns the JSON result destination, "-" being stdout.
// Files are created on first write.
func openOutput(path string) (io.Writer, func() error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }
	}
	out := &lazyFile{path: path}
	return out, out.Close
}

// lazyFile truncates path only once there is something to write, so a
// failed search keeps the previous results.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, fmt.Errorf("open output %s: %w", l.path, err)
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "comprende-prod/trademe/pkg/errors"
)

const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"
)

// Option is one ordered search query parameter
type Option struct {
	Key   string
	Value string
}

// Config represents the application configuration
type Config struct {
	// Site
	SiteURL   string
	SearchURL string

	// Search definition, ignored when SearchURLs is set
	SearchKind     string
	SearchRegion   string
	SearchDistrict string
	SearchSuburb   string
	SearchOptions  []Option
	SearchURLs     []string

	// Session
	FetchMode     string
	BrowserFlags  []string
	BrowserWait   time.Duration
	UserAgent     string
	MaxPages      int
	FetchTimeout  time.Duration
	RateLimitWait time.Duration

	// Memcache configuration, empty address disables the rate-limit guard
	MemcacheAddr string

	// Redis configuration, empty address disables publishing
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Output file for the JSON result, "-" is stdout
	OutputFile string

	// Environment
	Environment string

	// invalid lists integer variables that did not parse
	invalid []string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	var invalid []string
	redisDB := getEnvInt("REDIS_DB", 0, &invalid)
	redisStreamMaxLength := getEnvInt("REDIS_STREAM_MAX_LENGTH", 10000, &invalid)
	browserWait := getEnvInt("BROWSER_WAIT_SECONDS", 10, &invalid)
	maxPages := getEnvInt("MAX_PAGES", 0, &invalid)
	fetchTimeout := getEnvInt("FETCH_TIMEOUT_SECONDS", 30, &invalid)
	rateLimitWait := getEnvInt("RATE_LIMIT_BLOCK_SECONDS", 300, &invalid)

	return Config{
		SiteURL:              getEnv("TRADEME_SITE_URL", "https://www.trademe.co.nz"),
		SearchURL:            getEnv("TRADEME_SEARCH_URL", "https://www.trademe.co.nz/a/property"),
		SearchKind:           getEnv("SEARCH_KIND", "rent"),
		SearchRegion:         os.Getenv("SEARCH_REGION"),
		SearchDistrict:       os.Getenv("SEARCH_DISTRICT"),
		SearchSuburb:         os.Getenv("SEARCH_SUBURB"),
		SearchOptions:        parseOptions(os.Getenv("SEARCH_OPTIONS")),
		SearchURLs:           splitList(os.Getenv("SEARCH_URLS"), ","),
		FetchMode:            strings.ToLower(getEnv("FETCH_MODE", FetchModeBrowser)),
		BrowserFlags:         splitList(getEnv("BROWSER_FLAGS", "--headless=new --start-maximized"), " "),
		BrowserWait:          time.Duration(browserWait) * time.Second,
		UserAgent:            os.Getenv("BROWSER_USER_AGENT"),
		MaxPages:             maxPages,
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		RateLimitWait:        time.Duration(rateLimitWait) * time.Second,
		MemcacheAddr:         os.Getenv("MEMCACHE_ADDR"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "trademe:listings"),
		RedisStreamMaxLength: redisStreamMaxLength,
		OutputFile:           getEnv("OUTPUT_FILE", "-"),
		Environment:          getEnv("TRADEME_ENVIRONMENT", "development"),
		invalid:              invalid,
	}
}

// Validate checks the configuration for values the search cannot run with
func (c *Config) Validate() error {
	if len(c.invalid) > 0 {
		return apperrors.NewConfiguration("not an integer: "+strings.Join(c.invalid, ", "), nil)
	}
	if c.SiteURL == "" || c.SearchURL == "" {
		return apperrors.NewConfiguration("site and search urls must not be empty", nil)
	}
	if c.FetchMode != FetchModeBrowser && c.FetchMode != FetchModeHTTP {
		return apperrors.NewConfiguration("FETCH_MODE must be browser or http, got "+strconv.Quote(c.FetchMode), nil)
	}
	if c.BrowserWait < 0 {
		return apperrors.NewConfiguration("BROWSER_WAIT_SECONDS must not be negative", nil)
	}
	if c.MaxPages < 0 {
		return apperrors.NewConfiguration("MAX_PAGES must not be negative", nil)
	}
	if c.RedisAddr != "" && c.RedisStream == "" {
		return apperrors.NewConfiguration("REDIS_STREAM is required when REDIS_ADDR is set", nil)
	}
	if c.OutputFile == "" {
		return apperrors.NewConfiguration("OUTPUT_FILE must not be empty", nil)
	}
	return nil
}

// parseOptions parses "k=v,k2=v2" keeping the given order
func parseOptions(raw string) []Option {
	var opts []Option
	for _, pair := range splitList(raw, ",") {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		opts = append(opts, Option{Key: key, Value: strings.TrimSpace(value)})
	}
	return opts
}

func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvInt parses an integer variable, falling back to defaultValue when
// it is unset. Unparseable values are recorded in invalid.
func getEnvInt(key string, defaultValue int, invalid *[]string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		*invalid = append(*invalid, key+"="+strconv.Quote(raw))
		return defaultValue
	}
	return value
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

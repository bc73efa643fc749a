package browser

import (
	"strings"
	"time"

	"comprende-prod/trademe/internal/crawler"
)

// DefaultFlags are the driver flags used when none are configured
var DefaultFlags = []string{"--headless=new", "--start-maximized"}

// ReadySelector matches any listing card or the no-results banner, i.e.
// the point at which a results page has finished rendering.
const ReadySelector = "tm-property-super-feature-card, tm-property-premium-listing-card, tm-property-search-card, h2.tm-no-results__heading"

// Options configures a session
type Options struct {
	// Flags are opaque driver flags in "--name" or "--name=value" form
	Flags []string
	// Wait bounds how long a fetch polls for ReadySelector; 0 disables polling
	Wait time.Duration
	// ReadySelector overrides the default readiness selector
	ReadySelector string
	// UserAgent overrides the browser's user agent
	UserAgent string
	// Timeout bounds a single HTTP fetch; unused by the browser session
	Timeout time.Duration
}

func (o Options) readySelector() string {
	if o.ReadySelector != "" {
		return o.ReadySelector
	}
	return ReadySelector
}

// flag is one parsed driver flag
type flag struct {
	name  string
	value any
}

// parseFlags turns "--name=value" driver flags into name/value pairs.
// A flag without a value is a boolean switch.
func parseFlags(flags []string) []flag {
	var out []flag
	for _, raw := range flags {
		raw = strings.TrimLeft(strings.TrimSpace(raw), "-")
		if raw == "" {
			continue
		}
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			out = append(out, flag{name: name, value: true})
			continue
		}
		switch strings.ToLower(value) {
		case "true":
			out = append(out, flag{name: name, value: true})
		case "false":
			out = append(out, flag{name: name, value: false})
		default:
			out = append(out, flag{name: name, value: value})
		}
	}
	return out
}

var (
	_ crawler.Session = (*ChromeSession)(nil)
	_ crawler.Session = (*HTTPSession)(nil)
	_ crawler.Session = (*GuardedSession)(nil)
)

package upstream

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/dugout/pkg/logger"
)

// DefaultTTL is the freshness window of a successful fetch.
const DefaultTTL = 5 * time.Minute

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(f *Fetcher) {
		if ttl >= 0 {
			f.ttl = ttl
		}
	}
}

// WithClock injects the clock used for expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(f *Fetcher) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// WithLogger sets the fetcher logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

package strset

import (
	"fmt"
	"log/slog"

	"github.com/trichner/strset/pkg/djb2"
)

const (
	// DefaultInitialCapacity is a prime to reduce clustering of h mod capacity.
	DefaultInitialCapacity = 101
	DefaultMaxCapacity     = 1 << 30
	DefaultMaxLoad         = 0.5
)

// Hasher maps a string to its 64-bit hash. It must be deterministic.
type Hasher func(string) uint64

// Option configures a Set created by New.
type Option func(*options) error

type options struct {
	initialCapacity int
	maxCapacity     int
	maxLoad         float64
	hasher          Hasher
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{
		initialCapacity: DefaultInitialCapacity,
		maxCapacity:     DefaultMaxCapacity,
		maxLoad:         DefaultMaxLoad,
		hasher:          djb2.Sum64String,
		logger:          slog.New(slog.DiscardHandler),
	}
}

// WithInitialCapacity sets the number of buckets the set starts with.
func WithInitialCapacity(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("%w: initial capacity must be positive, was %d", ErrInvalidOption, n)
		}
		o.initialCapacity = n
		return nil
	}
}

// WithMaxCapacity caps growth. Once reached, Add fills the remaining
// buckets and then fails with ErrTableFull.
func WithMaxCapacity(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("%w: max capacity must be positive, was %d", ErrInvalidOption, n)
		}
		o.maxCapacity = n
		return nil
	}
}

// WithMaxLoad sets the load factor in (0,1] at which the table grows.
func WithMaxLoad(f float64) Option {
	return func(o *options) error {
		if !(f > 0 && f <= 1) {
			return fmt.Errorf("%w: max load must be in (0,1], was %v", ErrInvalidOption, f)
		}
		o.maxLoad = f
		return nil
	}
}

func WithHasher(h Hasher) Option {
	return func(o *options) error {
		if h == nil {
			return fmt.Errorf("%w: nil hasher", ErrInvalidOption)
		}
		o.hasher = h
		return nil
	}
}

// WithLogger sets the logger receiving table maintenance events at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidOption)
		}
		o.logger = l
		return nil
	}
}

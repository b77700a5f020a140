package mock

import (
	"fmt"
	"math/rand"
	"time"
)

// Options contains optional configuration for the simulated tool server.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Source seeds the pseudo-random payload and latency generation.
	Source rand.Source

	// Clock returns the current time; injectable for deterministic tests.
	Clock func() time.Time

	// ConnectDelayMin/Max bound the simulated connection latency.
	ConnectDelayMin time.Duration
	ConnectDelayMax time.Duration

	// InvokeDelayMin/Max bound the simulated tool call latency.
	InvokeDelayMin time.Duration
	InvokeDelayMax time.Duration
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order.
func NewOptions(opt ...Option) (Options, error) {
	options := Options{
		Source:          rand.NewSource(time.Now().UnixNano()),
		Clock:           time.Now,
		ConnectDelayMin: DefaultConnectDelayMin(),
		ConnectDelayMax: DefaultConnectDelayMax(),
		InvokeDelayMin:  DefaultInvokeDelayMin(),
		InvokeDelayMax:  DefaultInvokeDelayMax(),
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&options); err != nil {
			return Options{}, err
		}
	}

	if options.ConnectDelayMin > options.ConnectDelayMax {
		return Options{}, fmt.Errorf(
			"connect delay min (%v) cannot exceed max (%v)",
			options.ConnectDelayMin, options.ConnectDelayMax,
		)
	}
	if options.InvokeDelayMin > options.InvokeDelayMax {
		return Options{}, fmt.Errorf(
			"invoke delay min (%v) cannot exceed max (%v)",
			options.InvokeDelayMin, options.InvokeDelayMax,
		)
	}

	return options, nil
}

// WithRandSource sets the random source used for payload and latency generation.
func WithRandSource(src rand.Source) Option {
	return func(o *Options) error {
		if src == nil {
			return fmt.Errorf("rand source cannot be nil")
		}
		o.Source = src
		return nil
	}
}

// WithClock sets the time source used for timestamps and date fields.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Clock = clock
		return nil
	}
}

// WithConnectDelay bounds the simulated connection latency.
// Zero values disable the delay, which is useful in tests.
func WithConnectDelay(min, max time.Duration) Option {
	return func(o *Options) error {
		if min < 0 || max < 0 {
			return fmt.Errorf("connect delay cannot be negative")
		}
		o.ConnectDelayMin = min
		o.ConnectDelayMax = max
		return nil
	}
}

// WithInvokeDelay bounds the simulated tool call latency.
// Zero values disable the delay, which is useful in tests.
func WithInvokeDelay(min, max time.Duration) Option {
	return func(o *Options) error {
		if min < 0 || max < 0 {
			return fmt.Errorf("invoke delay cannot be negative")
		}
		o.InvokeDelayMin = min
		o.InvokeDelayMax = max
		return nil
	}
}

// DefaultConnectDelayMin returns the lower bound for simulated connection latency.
func DefaultConnectDelayMin() time.Duration {
	return 500 * time.Millisecond
}

// DefaultConnectDelayMax returns the upper bound for simulated connection latency.
func DefaultConnectDelayMax() time.Duration {
	return 1500 * time.Millisecond
}

// DefaultInvokeDelayMin returns the lower bound for simulated tool call latency.
func DefaultInvokeDelayMin() time.Duration {
	return 800 * time.Millisecond
}

// DefaultInvokeDelayMax returns the upper bound for simulated tool call latency.
func DefaultInvokeDelayMax() time.Duration {
	return 2300 * time.Millisecond
}

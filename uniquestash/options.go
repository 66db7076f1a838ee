package uniquestash

import "log/slog"

// Option configures a UniqueStash at construction time.
type Option func(*options)

type options struct {
	capacity int
	name     string
	logger   *slog.Logger
}

// WithCapacity preallocates room for exactly n values.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMetrics publishes prometheus metrics for the table, labelled with name.
func WithMetrics(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used to report retired slots. It defaults to logger.Get().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	if o.capacity < 0 {
		o.capacity = 0
	}

	return o
}

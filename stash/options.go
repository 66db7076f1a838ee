package stash

// Option configures a Stash at construction time.
type Option func(*options)

type options struct {
	capacity int
	name     string
}

// WithCapacity preallocates room for exactly n values. Puts beyond n may reallocate.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMetrics publishes prometheus metrics for the table, labelled with name.
// Tables without a name are not instrumented.
func WithMetrics(name string) Option {
	return func(o *options) {
		o.name = name
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

package session

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithMaxSize sets the maximum number of live sessions.
// If maxSize > 0: bounded, the oldest session is evicted and closed.
// If maxSize <= 0: unbounded.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRegistry) {
		r.maxSize = maxSize
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *inMemoryRegistry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

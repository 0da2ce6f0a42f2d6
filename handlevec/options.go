package handlevec

import "math"

type config struct {
	capacity int
	genLimit int32
}

func defaultConfig() config {
	return config{genLimit: math.MaxInt32}
}

// Option configures a Vector at construction time.
type Option func(*config)

// WithCapacity reserves room for n elements up front (see Vector.Reserve).
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithGenerationLimit sets the generation at which a slot is retired instead of being reused.
// Must be at least 1.
func WithGenerationLimit(limit int32) Option {
	if limit < 1 {
		panic("handlevec: generation limit must be at least 1")
	}
	return func(c *config) {
		c.genLimit = limit
	}
}

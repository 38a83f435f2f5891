package phogen

import (
	"log"
	"math/rand/v2"

	"github.com/phogen/phogen/fohash"
	"github.com/phogen/phogen/sohash"
)

const (
	// defaultBucketRatio sizes the bucket array at one tenth of the raw
	// item count, an expected occupancy of about ten items per bucket.
	// Larger buckets make the seed search exponentially harder; more
	// buckets cost seed-table memory in the generated code.
	defaultBucketRatio = 0.1

	// defaultMaxAttempts caps the per-bucket seed search. The search is
	// Las Vegas and unbounded in theory; the cap converts a pathological
	// configuration into ErrPlacementExhausted instead of a hang.
	defaultMaxAttempts = 10_000_000
)

// BuildOption is a functional option for configuring builds.
type BuildOption func(*config)

type config struct {
	foName      string
	soName      string
	bucketRatio float64
	workers     int
	maxAttempts int
	rng         *rand.Rand
	logger      *log.Logger
	progress    func(placed, total int)
	keyType     Kind
}

func defaultConfig() *config {
	return &config{
		foName:      fohash.DefaultName,
		soName:      sohash.DefaultName,
		bucketRatio: defaultBucketRatio,
		maxAttempts: defaultMaxAttempts,
		keyType:     KindString,
	}
}

func (c *config) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// WithFirstOrderHash selects the first-order hash by registry name.
func WithFirstOrderHash(name string) BuildOption {
	return func(c *config) {
		c.foName = name
	}
}

// WithSecondOrderHash selects the second-order hash by registry name.
// A 32-bit-domain variant paired with a 64-bit first-order hash is
// silently promoted to mxf64 before any hashing.
func WithSecondOrderHash(name string) BuildOption {
	return func(c *config) {
		c.soName = name
	}
}

// WithBucketRatio overrides the bucket-count-to-item-count ratio.
// Must be in (0, 1]. The ratio is fixed for the build's lifetime.
func WithBucketRatio(r float64) BuildOption {
	return func(c *config) {
		c.bucketRatio = r
	}
}

// WithWorkers enables parallel first-order hashing during ingestion
// with n goroutines. Bucket insertion stays sequential in input order,
// so duplicate and collision decisions are identical to a
// single-threaded build.
func WithWorkers(n int) BuildOption {
	return func(c *config) {
		c.workers = n
	}
}

// WithMaxAttempts caps the per-bucket seed search. Must be at least 1.
func WithMaxAttempts(n int) BuildOption {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithRand injects the random source used to draw candidate seeds,
// making builds reproducible.
func WithRand(rng *rand.Rand) BuildOption {
	return func(c *config) {
		c.rng = rng
	}
}

// WithLogger enables logging of dropped items and placement progress.
// The library is silent without it.
func WithLogger(l *log.Logger) BuildOption {
	return func(c *config) {
		c.logger = l
	}
}

// WithProgress installs a callback invoked after each bucket is placed,
// with the number of buckets placed so far and the total non-empty
// bucket count.
func WithProgress(fn func(placed, total int)) BuildOption {
	return func(c *config) {
		c.progress = fn
	}
}

// WithKeyType sets the payload type FromFile parses tokens as.
func WithKeyType(k Kind) BuildOption {
	return func(c *config) {
		c.keyType = k
	}
}

package helpboard

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	seedPath string
	addrs    []string
	password string

	parallelThreshold int
	defaultLimit      int
	maxLimit          int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSeedFile serves read-only collections from a JSONC seed file.
func WithSeedFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedPath = path
	})
}

// WithRedis stores listings in a Redis or Valkey instance.
// Combined with WithSeedFile the seed is imported on connect.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithParallelThreshold sets the collection size from which the engine
// evaluates listings concurrently. Default: 4096.
func WithParallelThreshold(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.parallelThreshold = n
	})
}

// WithPageLimits sets the default and maximum page sizes. Defaults: 20 and 100.
func WithPageLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

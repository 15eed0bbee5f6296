package ordersearch

import (
	"go.uber.org/zap"

	searchuc "github.com/glassline/ordersearch/internal/usecase/search"
)

type engineConfig struct {
	addrs      []string
	password   string
	keyPrefix  string
	historyCap int
	weights    searchuc.Weights
	logger     *zap.Logger
	inMemory   bool
}

// Option configures the Engine.
type Option func(*engineConfig)

// WithValkey sets Valkey addresses.
func WithValkey(addrs ...string) Option {
	return func(c *engineConfig) {
		c.addrs = addrs
	}
}

// WithRedis sets Redis addresses. Valkey and Redis speak the same protocol,
// so the two options are interchangeable.
func WithRedis(addrs ...string) Option {
	return func(c *engineConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *engineConfig) {
		c.password = password
	}
}

// WithKeyPrefix overrides the storage key namespace (default "ordersearch:").
func WithKeyPrefix(prefix string) Option {
	return func(c *engineConfig) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithHistoryCap overrides the per-user search history retention cap.
func WithHistoryCap(n int) Option {
	return func(c *engineConfig) {
		c.historyCap = n
	}
}

// WithWeights overrides the default relevance scoring constants.
func WithWeights(w Weights) Option {
	return func(c *engineConfig) {
		c.weights = toInternalWeights(w)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// InMemory runs the engine without a database. Orders are fed through
// Orders().Load or Orders().Upsert; presets and history are unavailable
// and searches are not recorded.
func InMemory() Option {
	return func(c *engineConfig) {
		c.inMemory = true
	}
}

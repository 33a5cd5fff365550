package atletismo

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	datasetPath   string
	datasetReader io.Reader

	apiKey   string
	baseURL  string
	model    string
	provider string
	timeout  time.Duration

	cacheAddr     string
	cachePassword string
	cacheTTL      time.Duration

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithDataset sets the path to the semicolon-delimited ranking CSV.
func WithDataset(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetPath = path
	})
}

// WithDatasetReader loads the ranking rows from a reader instead of a
// file. Takes precedence over WithDataset.
func WithDatasetReader(r io.Reader) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetReader = r
	})
}

// WithModel sets the chat-completions credentials. baseURL and model may
// be empty; they default to the Gemini OpenAI-compatibility endpoint and
// gemini-2.5-flash-lite.
func WithModel(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
		c.model = model
	})
}

// WithProvider sets the provider label used in logs and metrics.
// Default: "gemini".
func WithProvider(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = name
	})
}

// WithTimeout sets the per-request model timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithCache enables the Redis-backed intent cache.
func WithCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddr = addr
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

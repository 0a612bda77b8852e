package star

import "log/slog"

// Default limits applied by Read. Archives built with New or
// CreateFromPaths are unlimited unless an option sets a limit.
const (
	// DefaultMaxEntries is the default limit on the entry count of a read archive.
	DefaultMaxEntries = 200_000

	// DefaultMaxEntrySize is the default maximum payload size (256MB).
	DefaultMaxEntrySize = 256 << 20

	// DefaultMaxPathLen is the default maximum stored path length, terminator included.
	DefaultMaxPathLen = 4096
)

type config struct {
	logger       *slog.Logger
	maxEntries   uint64
	maxEntrySize uint64
	maxPathLen   uint64
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// newReadConfig is newConfig with the default limits in place.
func newReadConfig(opts []Option) config {
	cfg := config{
		maxEntries:   DefaultMaxEntries,
		maxEntrySize: DefaultMaxEntrySize,
		maxPathLen:   DefaultMaxPathLen,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures Read, New and CreateFromPaths.
type Option func(*config)

// WithLogger sets the logger used for diagnostics.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxEntries limits the entry count accepted from a header.
// Set limit to 0 to disable the limit.
func WithMaxEntries(limit uint64) Option {
	return func(c *config) {
		c.maxEntries = limit
	}
}

// WithMaxEntrySize limits the size of a single payload.
// Set limit to 0 to disable the limit.
func WithMaxEntrySize(limit uint64) Option {
	return func(c *config) {
		c.maxEntrySize = limit
	}
}

// WithMaxPathLen limits the stored length of a path, terminator included.
// Set limit to 0 to disable the limit.
func WithMaxPathLen(limit uint64) Option {
	return func(c *config) {
		c.maxPathLen = limit
	}
}

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

// defaultExtractWorkers is used when no ExtractWithWorkers option is set.
const defaultExtractWorkers = 4

type extractConfig struct {
	overwrite bool
	workers   int
	paths     []string
}

// ExtractWithOverwrite allows overwriting existing files.
// By default, existing files are skipped.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithWorkers sets the number of files written concurrently.
// Values <= 0 use the default (4).
func ExtractWithWorkers(n int) ExtractOption {
	return func(c *extractConfig) {
		if n <= 0 {
			n = defaultExtractWorkers
		}
		c.workers = n
	}
}

// ExtractPaths restricts extraction to the named entries.
// Names not present in the archive are reported as fs.ErrNotExist.
func ExtractPaths(paths ...string) ExtractOption {
	return func(c *extractConfig) {
		c.paths = append(c.paths, paths...)
	}
}

package sqpack

import (
	"io"
	"log"
)

// discardLogger is the zero-value logger used when the caller doesn't
// supply one via WithLogger: diagnostics are computed but thrown away
// rather than printed, the same discard-by-default posture as a library
// that must never write to a caller's stderr uninvited.
var discardLogger = log.New(io.Discard, "", 0)

const defaultHandleCacheSize = 32

// config collects the options passed to Open.
type config struct {
	walker          DirWalker
	logger          *log.Logger
	handleCacheSize int
}

func newConfig(opts []Option) config {
	cfg := config{
		walker:          OSWalker{},
		logger:          discardLogger,
		handleCacheSize: defaultHandleCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a GameData at construction time.
type Option func(*config)

// WithDirWalker overrides the directory enumeration collaborator used to
// discover repositories and index files. Defaults to OSWalker.
func WithDirWalker(w DirWalker) Option {
	return func(c *config) { c.walker = w }
}

// WithLogger supplies a logger for non-fatal diagnostics (block length
// mismatches, skipped synonym rows). Defaults to a discard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHandleCacheSize bounds the number of open data-file handles kept
// around between reads, keyed by data-file path. Data files are
// immutable once discovered, so caching their handles is always safe; this
// only trades memory/fd pressure for avoided open/close syscalls. A size of
// 0 disables the cache, reopening a data file handle on every read.
func WithHandleCacheSize(n int) Option {
	return func(c *config) { c.handleCacheSize = n }
}

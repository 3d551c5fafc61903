package sqpack

import "log"

// handleCache keeps a bounded number of open data-file Volumes around
// between reads, keyed by path. Data files are immutable once discovered
// (design note 9: "a small handle cache keyed by (volume_id, data_file_id)
// is safe because data files are immutable"), so reuse is always correct;
// this only trades memory/fd pressure against avoided open/close syscalls.
//
// Eviction is plain FIFO rather than true LRU, in keeping with the
// single-threaded, synchronous posture of the rest of the core (§5): no
// need for a fancier policy to justify its own bookkeeping.
type handleCache struct {
	size    int
	logger  *log.Logger
	entries map[string]*Volume
	order   []string
}

func newHandleCache(size int, logger *log.Logger) *handleCache {
	return &handleCache{
		size:    size,
		logger:  logger,
		entries: make(map[string]*Volume),
	}
}

// get returns an opened Volume for path, reusing a cached handle if present.
// It must only be called when the cache is enabled (size > 0); callers with
// caching disabled should use openTransient instead.
func (c *handleCache) get(path string) (*Volume, error) {
	if v, ok := c.entries[path]; ok {
		return v, nil
	}

	v, err := openVolume(path, c.logger, nil)
	if err != nil {
		return nil, err
	}

	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		if old, ok := c.entries[oldest]; ok {
			old.Close()
			delete(c.entries, oldest)
		}
	}
	c.entries[path] = v
	c.order = append(c.order, path)
	return v, nil
}

// openTransient opens path without touching the cache. Used when caching is
// disabled (size <= 0); the caller owns the returned Volume and must close
// it once done.
func (c *handleCache) openTransient(path string) (*Volume, error) {
	return openVolume(path, c.logger, nil)
}

// enabled reports whether this cache actually retains handles.
func (c *handleCache) enabled() bool {
	return c.size > 0
}

// closeAll releases every cached handle.
func (c *handleCache) closeAll() error {
	var firstErr error
	for _, v := range c.entries {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.entries = make(map[string]*Volume)
	c.order = nil
	return firstErr
}

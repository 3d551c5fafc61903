package sqpack

import "context"

// GameData is the top-level registry: one Repository per expansion folder
// found under <root>/sqpack, keyed by expansion id. It is the entry point
// returned by Open and the only type most callers touch directly.
type GameData struct {
	root         string
	repositories map[int]*Repository
	cache        *handleCache
	cfg          config
}

// Open constructs a GameData rooted at root: a directory containing a
// sqpack/ subdirectory and (for the base game) a ffxivgame.ver file.
//
// It enumerates sqpack/'s immediate subdirectories, constructing one
// Repository per subdirectory keyed by its expansion id, per spec.md §4.6.
func Open(root string, opts ...Option) (*GameData, error) {
	cfg := newConfig(opts)

	g := &GameData{
		root:         root,
		repositories: make(map[int]*Repository),
		cache:        newHandleCache(cfg.handleCacheSize, cfg.logger),
		cfg:          cfg,
	}

	names, err := cfg.walker.Subdirs(joinClean(root, "sqpack"))
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		repo, err := openRepository(root, name, cfg.walker, cfg.logger, g.cache)
		if err != nil {
			g.Close()
			return nil, err
		}
		g.repositories[repo.expansionID] = repo
	}
	return g, nil
}

// Read resolves path to a ParsedFileName, locates its repository by
// expansion id, and returns the decoded bytes.
//
// ctx is checked once per block of a Standard file's block walk (spec.md
// §5: "implementers may layer cancellation over the block loop at block
// boundaries without altering observable behavior"); it is never checked
// mid-block.
func (g *GameData) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed := ParseFileName(path)
	repo, ok := g.repositories[parsed.ExpansionID]
	if !ok {
		return nil, &Error{Kind: KindNotFound, Path: parsed.Path}
	}

	data, err := repo.getFile(ctx, parsed.Index)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Path == "" {
			e.Path = parsed.Path
		}
		return nil, err
	}
	return data, nil
}

// Close releases every handle held by every repository, including the
// shared data-file handle cache.
func (g *GameData) Close() error {
	var firstErr error
	for _, repo := range g.repositories {
		if err := repo.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := g.cache.closeAll(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

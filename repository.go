package sqpack

import (
	"context"
	"log"
	"os"
	"path"
	"strings"
)

// readVersionFile reads a .ver file's raw contents. Missing version files
// are an IoError, not a NotFound: the repository itself was located fine,
// its metadata just isn't readable.
func readVersionFile(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, wrapf(KindIoError, err, "read version file %q", p)
	}
	return data, nil
}

// locatorEntry is the merged-index value: which hash table row matched, and
// which index volume it came from (so its discovered .datN paths are
// reachable).
type locatorEntry struct {
	entry  IndexHashTableEntry
	volume *Volume
}

// Repository is one logical archive group: the base game ("ffxiv") or a
// single numbered expansion ("exN"). It owns every index volume discovered
// under its folder and a flat hash -> locator mapping merged from all of
// them (spec.md §4.5).
type Repository struct {
	name        string
	root        string
	expansionID int
	version     string

	volumes []*Volume
	byHash  map[uint64]locatorEntry

	index2Volumes []*Volume

	walker DirWalker
	logger *log.Logger
	cache  *handleCache
}

// openRepository constructs a Repository for the folder name under
// <root>/sqpack, deriving its expansion id, reading its version file, and
// indexing every .index file it finds.
func openRepository(root, name string, walker DirWalker, logger *log.Logger, cache *handleCache) (*Repository, error) {
	r := &Repository{
		name:        name,
		root:        root,
		expansionID: expansionIDOf(name),
		byHash:      make(map[uint64]locatorEntry),
		walker:      walker,
		logger:      logger,
		cache:       cache,
	}

	version, err := r.parseVersion()
	if err != nil {
		return nil, err
	}
	r.version = version

	if err := r.setupIndexes(); err != nil {
		r.close()
		return nil, err
	}
	return r, nil
}

// parseVersion reads the version text file: <root>/ffxivgame.ver for
// ffxiv, <root>/sqpack/<name>/<name>.ver otherwise.
func (r *Repository) parseVersion() (string, error) {
	var verPath string
	if r.name == "ffxiv" {
		verPath = path.Join(r.root, "ffxivgame.ver")
	} else {
		verPath = path.Join(r.root, "sqpack", r.name, r.name+".ver")
	}
	data, err := readVersionFile(verPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// setupIndexes enumerates every .index file under <root>/sqpack/<name>,
// opens a Volume per file, has each load its header/hash table/data files,
// and folds every hash table entry into the merged mapping. Collisions
// between volumes are not expected; last-writer-wins, since construction
// order is fixed (spec.md §3).
func (r *Repository) setupIndexes() error {
	repoDir := path.Join(r.root, "sqpack", r.name)
	names, err := r.walker.Files(repoDir)
	if err != nil {
		return err
	}

	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".index"):
			v, err := openVolume(path.Join(repoDir, name), r.logger, r.walker)
			if err != nil {
				return err
			}
			if err := r.indexVolume(v); err != nil {
				v.Close()
				return err
			}
			r.volumes = append(r.volumes, v)
		case strings.HasSuffix(name, ".index2"):
			v, err := openVolume(path.Join(repoDir, name), r.logger, r.walker)
			if err != nil {
				return err
			}
			r.index2Volumes = append(r.index2Volumes, v)
		}
	}
	return nil
}

func (r *Repository) indexVolume(v *Volume) error {
	if err := v.loadIndexHeader(); err != nil {
		return err
	}
	if err := v.loadHashTable(); err != nil {
		return err
	}
	if err := v.discoverDataFiles(v.indexHeader.NumberOfDataFiles); err != nil {
		return err
	}
	for _, entry := range v.hashTable {
		if entry.IsSynonym() {
			r.logger.Printf("sqpack: %s: skipping synonym entry for hash 0x%016x", r.name, entry.Hash)
			continue
		}
		r.byHash[entry.Hash] = locatorEntry{entry: entry, volume: v}
	}
	return nil
}

// Index2Volumes returns the opened .index2 volumes discovered for this
// repository. This is purely informational (SPEC_FULL §11.6): the core
// read path never consults it.
func (r *Repository) Index2Volumes() []*Volume {
	return r.index2Volumes
}

// Version returns the repository's parsed version string.
func (r *Repository) Version() string {
	return r.version
}

// getFile resolves hash against the merged index and reads the located
// file out of the appropriate data volume.
func (r *Repository) getFile(ctx context.Context, hash uint64) ([]byte, error) {
	loc, ok := r.byHash[hash]
	if !ok {
		return nil, &Error{Kind: KindNotFound, Hash: hash}
	}

	id := loc.entry.DataFileID()
	if int(id) >= len(loc.volume.dataFiles) || loc.volume.dataFiles[id] == "" {
		return nil, &Error{Kind: KindMissingDataFile, Hash: hash, Offset: loc.entry.DataFileOffset()}
	}
	dataPath := loc.volume.dataFiles[id]

	var dv *Volume
	var err error
	if r.cache.enabled() {
		dv, err = r.cache.get(dataPath)
	} else {
		dv, err = r.cache.openTransient(dataPath)
	}
	if err != nil {
		return nil, err
	}
	if !r.cache.enabled() {
		defer dv.Close()
	}

	return dv.readFile(ctx, loc.entry.DataFileOffset())
}

func (r *Repository) close() error {
	var firstErr error
	for _, v := range r.volumes {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, v := range r.index2Volumes {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

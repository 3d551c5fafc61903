package sqpack

import (
	"io/fs"
	"os"
	"path/filepath"
)

// DirWalker decouples repository/archive discovery from the filesystem, the
// way squashfs.Reader is handed an io.ReaderAt rather than a path: Repository
// and GameData never call os.ReadDir/filepath.WalkDir directly, they call
// through a DirWalker so tests can substitute an in-memory fixture.
type DirWalker interface {
	// Subdirs returns the immediate subdirectory names of dir, in no
	// particular order.
	Subdirs(dir string) ([]string, error)

	// Files returns every regular file path recursively under dir, as
	// paths relative to dir using "/" separators.
	Files(dir string) ([]string, error)
}

// OSWalker is the default DirWalker, backed by the real filesystem.
type OSWalker struct{}

func (OSWalker) Subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, wrapf(KindIoError, err, "read dir %q", dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (OSWalker) Files(dir string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			rel, _ := filepath.Rel(dir, p)
			names = append(names, filepath.ToSlash(rel))
		}
		return err
	})
	if err != nil {
		return nil, wrapf(KindIoError, err, "read dir %q", dir)
	}
	return names, nil
}

// joinClean is filepath.Join with forward slashes forced, since SqPack
// trees are addressed with "/" even when the host OS is Windows.
func joinClean(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}

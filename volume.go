package sqpack

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Volume is a single opened SqPack-family file: either an .index/.index2
// volume (which additionally owns a hash table and the list of sibling
// .datN paths it indexes) or a bare .datN data file opened to serve
// readFile calls, either for a single read or kept open in the handle
// cache across reads. Both share the same 28-byte SqPackHeader
// shape, which is why one type serves both roles — grounded on the
// reference reader reusing one header struct for index and data files
// alike, and on squashfs.Reader's single io.ReaderAt-backed type covering
// every block kind in its archive.
type Volume struct {
	path   string
	f      *os.File
	sr     *streamReader
	header SqPackHeader
	logger *log.Logger
	walker DirWalker

	indexHeader IndexHeader
	hashTable   []IndexHashTableEntry
	dataFiles   []string // absolute paths, indexed by data file id
}

// openVolume opens path and decodes its SqPackHeader. The caller is
// responsible for calling Close. walker is consulted only by
// discoverDataFiles; it defaults to OSWalker when nil, so tests that build
// fixture archives in a real temp directory can call openVolume directly.
func openVolume(path string, logger *log.Logger, walker DirWalker) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapf(KindIoError, err, "open %q", path)
	}
	sr := newStreamReader(f)
	header, err := decodeSqPackHeader(sr)
	if err != nil {
		f.Close()
		return nil, err
	}
	if logger == nil {
		logger = discardLogger
	}
	if walker == nil {
		walker = OSWalker{}
	}
	return &Volume{path: path, f: f, sr: sr, header: header, logger: logger, walker: walker}, nil
}

// Close releases the volume's file handle.
func (v *Volume) Close() error {
	if err := v.f.Close(); err != nil {
		return wrapf(KindIoError, err, "close %q", v.path)
	}
	return nil
}

// loadIndexHeader seeks to header.size and decodes the 1024-byte
// IndexHeader that follows the SqPackHeader on an index volume.
func (v *Volume) loadIndexHeader() error {
	if err := v.sr.seek(int64(v.header.HeaderSize)); err != nil {
		return err
	}
	b, err := v.sr.readExact(indexHeaderSize)
	if err != nil {
		return err
	}
	ih, err := decodeIndexHeader(b)
	if err != nil {
		return err
	}
	v.indexHeader = ih
	return nil
}

// loadHashTable seeks to index_header.index_data_offset and decodes
// index_data_size / 16 consecutive hash table entries.
func (v *Volume) loadHashTable() error {
	if err := v.sr.seek(int64(v.indexHeader.IndexDataOffset)); err != nil {
		return err
	}
	n := v.indexHeader.IndexDataSize / hashTableEntrySize
	entries := make([]IndexHashTableEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		b, err := v.sr.readExact(hashTableEntrySize)
		if err != nil {
			return err
		}
		entries = append(entries, decodeIndexHashTableEntry(b))
	}
	v.hashTable = entries
	return nil
}

// discoverDataFiles enumerates sibling files of the volume's directory and
// matches them against the expected "<stem>.datN" names for
// N in [0, numberOfDataFiles). A missing sibling leaves a hole at that
// index; it is not an error until something tries to read through it.
func (v *Volume) discoverDataFiles(numberOfDataFiles uint32) error {
	dir := filepath.Dir(v.path)
	stem := strings.TrimSuffix(filepath.Base(v.path), filepath.Ext(v.path))

	names, err := v.walker.Files(dir)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	files := make([]string, numberOfDataFiles)
	for i := uint32(0); i < numberOfDataFiles; i++ {
		name := stem + ".dat" + strconv.Itoa(int(i))
		if present[name] {
			files[i] = filepath.Join(dir, name)
		}
	}
	v.dataFiles = files
	return nil
}

// readFile seeks to offset on this (data file) volume, decodes the FileInfo
// record found there, and dispatches on its type.
func (v *Volume) readFile(ctx context.Context, offset int64) ([]byte, error) {
	if err := v.sr.seek(offset); err != nil {
		return nil, err
	}
	b, err := v.sr.readExact(fileInfoSize)
	if err != nil {
		return nil, err
	}
	fi, err := decodeFileInfo(b, offset)
	if err != nil {
		return nil, err
	}

	switch fi.Type {
	case FileTypeEmpty:
		return nil, &Error{Kind: KindEmptyAsset, Offset: offset}
	case FileTypeStandard:
		return readStandardFile(ctx, v.sr, fi, v.logger)
	case FileTypeModel, FileTypeTexture:
		return nil, &Error{Kind: KindUnimplemented, Path: fi.Type.String()}
	default:
		return nil, wrapf(KindMalformedHeader, nil, "unrecognized file info type %d", fi.Type)
	}
}

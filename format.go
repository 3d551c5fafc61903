package sqpack

// Binary layouts in this file are grounded on lumina-py's byte-offset
// decoders (lumina/data/sqpack.py, lumina/exdreader.py SqPackHeader /
// SqPackIndexHeader / SqPackIndexHashTable / SqPackFileInfo /
// DatStdFileBlockInfos / DatBlockHeader) and on the teacher's manual
// field-by-field decode style (icza/mpq mpq.go's header/hashEntry/blockEntry
// structs, suprsokr/go-mpq format.go's baseHeader/hashTableEntry).
//
// Every decoder here is a pure function over an exact-length byte slice; no
// I/O happens except in decodeSqPackHeader, which must refuse the console
// platform before consuming the rest of the stream.

// PlatformID identifies the target platform a SqPack header was built for.
type PlatformID uint8

const (
	PlatformWin32 PlatformID = 0
	PlatformPS3   PlatformID = 1
	PlatformPS4   PlatformID = 2
)

func (p PlatformID) String() string {
	switch p {
	case PlatformWin32:
		return "Win32"
	case PlatformPS3:
		return "PS3"
	case PlatformPS4:
		return "PS4"
	default:
		return "Unknown"
	}
}

// FileType is the variant tag of a FileInfo record.
type FileType uint32

const (
	FileTypeEmpty    FileType = 1
	FileTypeStandard FileType = 2
	FileTypeModel    FileType = 3
	FileTypeTexture  FileType = 4
)

func (t FileType) String() string {
	switch t {
	case FileTypeEmpty:
		return "Empty"
	case FileTypeStandard:
		return "Standard"
	case FileTypeModel:
		return "Model"
	case FileTypeTexture:
		return "Texture"
	default:
		return "Unknown"
	}
}

// Block type constants (BlockHeader.BlockType). Anything other than
// BlockTypeUncompressed means "raw deflate stream", but 4713 is the
// canonical compressed marker (DatBlockType.COMPRESSED in the reference
// implementation) and is exposed as a named constant rather than a magic
// number.
const (
	BlockTypeUncompressed uint32 = 32000
	BlockTypeDeflate      uint32 = 4713
)

// SqPackHeader is the 28+ byte header shared by every .index/.index2/.datN
// file.
type SqPackHeader struct {
	Magic      [8]byte
	Platform   PlatformID
	HeaderSize uint32
	Version    uint32
	Type       uint32
}

// decodeSqPackHeader reads a SqPackHeader from r. It is the one decoder in
// this file that takes a stream instead of a slice: it must reject the
// console platform before reading the fields that follow it, the way
// lumina's SqPackHeader constructor raises HeaderNotSupported before
// touching size/version/type.
func decodeSqPackHeader(r *streamReader) (SqPackHeader, error) {
	var h SqPackHeader

	magic, err := r.readExact(8)
	if err != nil {
		return h, err
	}
	copy(h.Magic[:], magic)

	platform, err := r.u8()
	if err != nil {
		return h, err
	}
	h.Platform = PlatformID(platform)

	if _, err := r.readExact(3); err != nil { // reserved
		return h, err
	}

	if h.Platform == PlatformPS3 {
		return h, &Error{Kind: KindUnsupportedPlatform, Path: h.Platform.String()}
	}

	if h.HeaderSize, err = r.u32(); err != nil {
		return h, err
	}
	if h.Version, err = r.u32(); err != nil {
		return h, err
	}
	if h.Type, err = r.u32(); err != nil {
		return h, err
	}
	return h, nil
}

const indexHeaderSize = 1024

// hashSectionInfo is the repeated (offset, size, hash) shape used by the
// synonym / empty-block / dir-index sections of IndexHeader.
type hashSectionInfo struct {
	Offset uint32
	Size   uint32
	Hash   [64]byte
}

// IndexHeader is the 1024-byte (padded) header of the index data section.
type IndexHeader struct {
	Size              uint32
	Version           uint32
	IndexDataOffset   uint32
	IndexDataSize     uint32
	IndexDataHash     [64]byte
	NumberOfDataFiles uint32
	Synonym           hashSectionInfo
	EmptyBlock        hashSectionInfo
	DirIndex          hashSectionInfo
	IndexType         uint32
}

func decodeIndexHeader(b []byte) (IndexHeader, error) {
	if len(b) != indexHeaderSize {
		return IndexHeader{}, wrapf(KindMalformedHeader, nil,
			"index header must be %d bytes, got %d", indexHeaderSize, len(b))
	}
	v := byteView(b)
	var h IndexHeader
	h.Size = v.u32(0)
	h.Version = v.u32(4)
	h.IndexDataOffset = v.u32(8)
	h.IndexDataSize = v.u32(12)
	copy(h.IndexDataHash[:], v.slice(16, 64))
	h.NumberOfDataFiles = v.u32(80)
	h.Synonym = decodeHashSectionInfo(v, 84)
	h.EmptyBlock = decodeHashSectionInfo(v, 156)
	h.DirIndex = decodeHashSectionInfo(v, 228)
	h.IndexType = v.u32(300)
	// bytes [304:960) reserved, [960:1024) trailing hash: neither is
	// consulted by the core read path (§3), so they are not retained.

	if h.IndexDataSize%16 != 0 {
		return h, wrapf(KindMalformedHeader, nil,
			"index_data_size %d is not a multiple of 16", h.IndexDataSize)
	}
	return h, nil
}

func decodeHashSectionInfo(v byteView, off int) hashSectionInfo {
	var s hashSectionInfo
	s.Offset = v.u32(off)
	s.Size = v.u32(off + 4)
	copy(s.Hash[:], v.slice(off+8, 64))
	return s
}

const hashTableEntrySize = 16

// IndexHashTableEntry is one 16-byte row of an index's hash table: a path
// hash plus a packed locator into the archive's data files.
type IndexHashTableEntry struct {
	Hash uint64
	Data uint32
}

func decodeIndexHashTableEntry(b []byte) IndexHashTableEntry {
	v := byteView(b)
	return IndexHashTableEntry{
		Hash: v.u64(0),
		Data: v.u32(8),
		// bytes [12:16) reserved.
	}
}

// IsSynonym reports whether this entry resolves through the synonym
// section rather than naming a data file directly.
func (e IndexHashTableEntry) IsSynonym() bool {
	return e.Data&0b1 == 0b1
}

// DataFileID is the 0–7 index of the .datN sibling holding the payload.
func (e IndexHashTableEntry) DataFileID() uint8 {
	return uint8((e.Data & 0b1110) >> 1)
}

// DataFileOffset is the byte offset into the selected data file. The
// locator clears the low 4 bits (discarding both the file-id field and the
// synonym flag) before shifting, which is why it is expressed as
// "(data & ~0xF) << 3" rather than a plain "offset >> 3": it is equivalent
// to (data >> 4) << 7, i.e. offsets are 128-byte aligned (spec design note
// 9c).
func (e IndexHashTableEntry) DataFileOffset() int64 {
	return int64(e.Data&^uint32(0xF)) << 3
}

const fileInfoSize = 24

// FileInfo describes the payload located at an index entry's data-file
// offset. Offset is the absolute offset of this FileInfo record itself
// (not the payload start) — block offsets in BlockInfoStandard are relative
// to Offset + HeaderSize, confirmed by the reference reader's
// "file_info.offset + file_info.header_size + block.offset" addressing.
type FileInfo struct {
	HeaderSize     uint32
	Type           FileType
	RawFileSize    uint32
	NumberOfBlocks uint32
	Offset         int64
}

func decodeFileInfo(b []byte, offset int64) (FileInfo, error) {
	if len(b) != fileInfoSize {
		return FileInfo{}, wrapf(KindMalformedHeader, nil,
			"file info must be %d bytes, got %d", fileInfoSize, len(b))
	}
	v := byteView(b)
	return FileInfo{
		HeaderSize:  v.u32(0),
		Type:        FileType(v.u32(4)),
		RawFileSize: v.u32(8),
		// bytes [12:20) reserved.
		NumberOfBlocks: v.u32(20),
		Offset:         offset,
	}, nil
}

const blockInfoStandardSize = 8

// BlockInfoStandard is one entry of a Standard file's block directory.
type BlockInfoStandard struct {
	Offset           uint32
	CompressedSize   uint16
	UncompressedSize uint16
}

func decodeBlockInfoStandard(b []byte) BlockInfoStandard {
	v := byteView(b)
	return BlockInfoStandard{
		Offset:           v.u32(0),
		CompressedSize:   v.u16(4),
		UncompressedSize: v.u16(6),
	}
}

const blockHeaderSize = 16

// BlockHeader precedes every block's data within a data file.
type BlockHeader struct {
	Size          uint32
	BlockDataSize uint32
	BlockType     uint32
}

func decodeBlockHeader(b []byte) (BlockHeader, error) {
	if len(b) != blockHeaderSize {
		return BlockHeader{}, wrapf(KindMalformedHeader, nil,
			"block header must be %d bytes, got %d", blockHeaderSize, len(b))
	}
	v := byteView(b)
	return BlockHeader{
		Size: v.u32(0),
		// bytes [4:8) reserved.
		BlockDataSize: v.u32(8),
		BlockType:     v.u32(12),
	}, nil
}

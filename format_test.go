package sqpack

import (
	"bytes"
	"testing"
)

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func putU16(b []byte, off int, v uint16) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
}

func putU64(b []byte, off int, v uint64) {
	putU32(b, off, uint32(v))
	putU32(b, off+4, uint32(v>>32))
}

func TestDecodeIndexHashTableEntry(t *testing.T) {
	b := make([]byte, hashTableEntrySize)
	putU64(b, 0, 0xDEADBEEFCAFED00D)
	putU32(b, 8, 0x00001234)

	entry := decodeIndexHashTableEntry(b)
	if entry.Hash != 0xDEADBEEFCAFED00D {
		t.Errorf("Hash = 0x%016x, want 0xDEADBEEFCAFED00D", entry.Hash)
	}
	if entry.Data != 0x00001234 {
		t.Errorf("Data = 0x%08x, want 0x1234", entry.Data)
	}
}

func TestDecodeFileInfo(t *testing.T) {
	b := make([]byte, fileInfoSize)
	putU32(b, 0, 128)                      // header_size
	putU32(b, 4, uint32(FileTypeStandard)) // type
	putU32(b, 8, 4096)                     // raw_file_size
	putU32(b, 20, 2)                       // number_of_blocks

	fi, err := decodeFileInfo(b, 0x1000)
	if err != nil {
		t.Fatalf("decodeFileInfo: %v", err)
	}
	if fi.HeaderSize != 128 || fi.Type != FileTypeStandard || fi.RawFileSize != 4096 || fi.NumberOfBlocks != 2 || fi.Offset != 0x1000 {
		t.Errorf("decodeFileInfo = %+v, want header_size=128 type=Standard raw_file_size=4096 number_of_blocks=2 offset=0x1000", fi)
	}
}

func TestDecodeFileInfoWrongLength(t *testing.T) {
	if _, err := decodeFileInfo(make([]byte, fileInfoSize-1), 0); err == nil {
		t.Error("decodeFileInfo with short buffer: want error, got nil")
	}
}

func TestDecodeBlockInfoStandard(t *testing.T) {
	b := make([]byte, blockInfoStandardSize)
	putU32(b, 0, 48)
	putU16(b, 4, 100)
	putU16(b, 6, 200)

	bi := decodeBlockInfoStandard(b)
	if bi.Offset != 48 || bi.CompressedSize != 100 || bi.UncompressedSize != 200 {
		t.Errorf("decodeBlockInfoStandard = %+v, want offset=48 compressed=100 uncompressed=200", bi)
	}
}

func TestDecodeBlockHeader(t *testing.T) {
	b := make([]byte, blockHeaderSize)
	putU32(b, 0, 16)
	putU32(b, 8, 64)
	putU32(b, 12, BlockTypeDeflate)

	bh, err := decodeBlockHeader(b)
	if err != nil {
		t.Fatalf("decodeBlockHeader: %v", err)
	}
	if bh.Size != 16 || bh.BlockDataSize != 64 || bh.BlockType != BlockTypeDeflate {
		t.Errorf("decodeBlockHeader = %+v, want size=16 block_data_size=64 block_type=%d", bh, BlockTypeDeflate)
	}
}

func TestDecodeIndexHeader(t *testing.T) {
	b := make([]byte, indexHeaderSize)
	putU32(b, 0, indexHeaderSize)
	putU32(b, 4, 1)
	putU32(b, 8, 2048)
	putU32(b, 12, 32) // index_data_size, multiple of 16
	putU32(b, 80, 8)  // number_of_data_files

	ih, err := decodeIndexHeader(b)
	if err != nil {
		t.Fatalf("decodeIndexHeader: %v", err)
	}
	if ih.IndexDataOffset != 2048 || ih.IndexDataSize != 32 || ih.NumberOfDataFiles != 8 {
		t.Errorf("decodeIndexHeader = %+v, want index_data_offset=2048 index_data_size=32 number_of_data_files=8", ih)
	}
}

func TestDecodeIndexHeaderRejectsMisalignedSize(t *testing.T) {
	b := make([]byte, indexHeaderSize)
	putU32(b, 12, 17) // not a multiple of 16

	if _, err := decodeIndexHeader(b); err == nil {
		t.Error("decodeIndexHeader with index_data_size=17: want error, got nil")
	}
}

func TestDecodeSqPackHeaderRejectsPS3(t *testing.T) {
	b := make([]byte, 20)
	copy(b[0:8], "SqPack\x00\x00")
	b[8] = byte(PlatformPS3)
	putU32(b, 12, 24)
	putU32(b, 16, 1)

	_, err := decodeSqPackHeader(newStreamReader(bytes.NewReader(b)))
	if err == nil {
		t.Fatal("decodeSqPackHeader with PS3 platform: want error, got nil")
	}
	sqErr, ok := err.(*Error)
	if !ok || sqErr.Kind != KindUnsupportedPlatform {
		t.Errorf("decodeSqPackHeader error = %v, want Kind=KindUnsupportedPlatform", err)
	}
}

func TestDecodeSqPackHeaderWin32(t *testing.T) {
	b := make([]byte, 24)
	copy(b[0:8], "SqPack\x00\x00")
	b[8] = byte(PlatformWin32)
	putU32(b, 12, 1024) // header_size
	putU32(b, 16, 1)    // version
	putU32(b, 20, 0)    // type

	h, err := decodeSqPackHeader(newStreamReader(bytes.NewReader(b)))
	if err != nil {
		t.Fatalf("decodeSqPackHeader: %v", err)
	}
	if h.Platform != PlatformWin32 || h.HeaderSize != 1024 || h.Version != 1 {
		t.Errorf("decodeSqPackHeader = %+v, want platform=Win32 header_size=1024 version=1", h)
	}
}

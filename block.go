package sqpack

import (
	"bytes"
	"context"
	"io"
	"log"

	"github.com/klauspost/compress/flate"
)

// readStandardFile implements C7: it reads fi's block directory, then walks
// each block in order, copying or inflating its payload and concatenating
// the results into the logical file.
//
// Grounded on squashfs.Reader's block-walking style (seek via
// io.SectionReader, decode a small fixed header, dispatch on a type field)
// but swaps zlib's block codec for SqPack's raw-deflate-or-copy choice.
func readStandardFile(ctx context.Context, sr *streamReader, fi FileInfo, logger *log.Logger) ([]byte, error) {
	dirSize := int(fi.NumberOfBlocks) * blockInfoStandardSize
	if err := sr.seek(fi.Offset + fileInfoSize); err != nil {
		return nil, err
	}
	dirBytes, err := sr.readExact(dirSize)
	if err != nil {
		return nil, err
	}

	blocks := make([]BlockInfoStandard, fi.NumberOfBlocks)
	for i := range blocks {
		blocks[i] = decodeBlockInfoStandard(dirBytes[i*blockInfoStandardSize : (i+1)*blockInfoStandardSize])
	}

	var out []byte
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payload, err := readBlock(sr, fi, b)
		if err != nil {
			return nil, err
		}
		out = append(out, payload...)
	}

	if uint32(len(out)) != fi.RawFileSize {
		logger.Printf("sqpack: file at offset 0x%x: emitted %d bytes, raw_file_size says %d",
			fi.Offset, len(out), fi.RawFileSize)
	}
	return out, nil
}

// readBlock reads and decodes a single block of a Standard file.
func readBlock(sr *streamReader, fi FileInfo, b BlockInfoStandard) ([]byte, error) {
	blockStart := fi.Offset + int64(fi.HeaderSize) + int64(b.Offset)
	if err := sr.seek(blockStart); err != nil {
		return nil, err
	}
	hb, err := sr.readExact(blockHeaderSize)
	if err != nil {
		return nil, err
	}
	bh, err := decodeBlockHeader(hb)
	if err != nil {
		return nil, err
	}

	data, err := sr.readExact(int(bh.BlockDataSize))
	if err != nil {
		return nil, err
	}

	if bh.BlockType == BlockTypeUncompressed {
		return data, nil
	}
	inflated, err := inflateRaw(data)
	if err != nil {
		return nil, wrapf(KindInflateError, err, "block at offset 0x%x", blockStart)
	}
	return inflated, nil
}

// inflateRaw decompresses a headerless deflate stream: no zlib wrapper, no
// gzip header, equivalent to a 15-bit window with header suppression.
func inflateRaw(data []byte) ([]byte, error) {
	zr := flate.NewReader(bytes.NewReader(data))
	defer zr.Close()
	return io.ReadAll(zr)
}

package sqpack

import "io"

// byteView is a pure, allocation-free little-endian field decoder over a
// byte slice. Every SqPack integer field is little-endian and unsigned; no
// method here ever sign-extends.
type byteView []byte

func (b byteView) u8(off int) uint8 {
	return b[off]
}

func (b byteView) u16(off int) uint16 {
	_ = b[off+1] // bounds check hint, as encoding/binary.LittleEndian does
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func (b byteView) u32(off int) uint32 {
	_ = b[off+3]
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func (b byteView) u64(off int) uint64 {
	_ = b[off+7]
	lo := uint64(b.u32(off))
	hi := uint64(b.u32(off + 4))
	return lo | hi<<32
}

func (b byteView) slice(off, n int) []byte {
	return b[off : off+n]
}

// streamReader wraps an io.ReadSeeker with byteView's little-endian u8 and
// u32 primitives (it has no u16 or u64 readers), plus the seek/read-exact
// operations the header decoder needs before it knows how many bytes it is
// allowed to consume.
type streamReader struct {
	r io.ReadSeeker
}

func newStreamReader(r io.ReadSeeker) *streamReader {
	return &streamReader{r: r}
}

// seek seeks to an absolute offset from the start of the stream.
func (s *streamReader) seek(offset int64) error {
	_, err := s.r.Seek(offset, io.SeekStart)
	if err != nil {
		return wrapf(KindIoError, err, "seek to 0x%x", offset)
	}
	return nil
}

// readExact reads exactly n bytes or returns a KindIoError.
func (s *streamReader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, wrapf(KindIoError, err, "short read (wanted %d bytes)", n)
	}
	return buf, nil
}

func (s *streamReader) u8() (uint8, error) {
	buf, err := s.readExact(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (s *streamReader) u32() (uint32, error) {
	buf, err := s.readExact(4)
	if err != nil {
		return 0, err
	}
	return byteView(buf).u32(0), nil
}

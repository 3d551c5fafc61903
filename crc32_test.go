package sqpack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCrc32LiteralScenarios(t *testing.T) {
	for _, test := range []struct {
		desc string
		in   string
		want uint32
	}{
		{desc: "empty input", in: "", want: 0},
		{desc: "single byte matches stock CRC-32/ISO-HDLC", in: "a", want: 0xE8B7BE43},
	} {
		t.Run(test.desc, func(t *testing.T) {
			if got := crc32([]byte(test.in)); got != test.want {
				t.Errorf("crc32(%q) = 0x%08x, want 0x%08x", test.in, got, test.want)
			}
		})
	}
}

func TestCrc32Determinism(t *testing.T) {
	for _, p := range []string{"exd/root.exl", "bg/ex3/foo.bar", "chara/human/c0101/obj.mdl"} {
		first := crc32([]byte(p))
		for i := 0; i < 5; i++ {
			if got := crc32([]byte(p)); got != first {
				t.Errorf("crc32(%q) not stable across calls: run 0 = 0x%08x, run %d = 0x%08x", p, first, i+1, got)
			}
		}
	}
}

func TestCalcIndex(t *testing.T) {
	got := calcIndex("exd/root.exl")
	want := uint64(crc32([]byte("exd")))<<32 | uint64(crc32([]byte("root.exl")))
	if got != want {
		t.Errorf("calcIndex(%q) = 0x%016x, want 0x%016x", "exd/root.exl", got, want)
	}
}

func TestSplitPath(t *testing.T) {
	for _, test := range []struct {
		desc       string
		path       string
		wantFolder string
		wantFile   string
	}{
		{desc: "nested", path: "exd/root.exl", wantFolder: "exd", wantFile: "root.exl"},
		{desc: "deeper nesting", path: "bg/ex3/foo.bar", wantFolder: "bg/ex3", wantFile: "foo.bar"},
		{desc: "no separator", path: "root.exl", wantFolder: "", wantFile: "root.exl"},
	} {
		t.Run(test.desc, func(t *testing.T) {
			folder, file := splitPath(test.path)
			if diff := cmp.Diff([2]string{test.wantFolder, test.wantFile}, [2]string{folder, file}); diff != "" {
				t.Errorf("splitPath(%q) mismatch (-want +got):\n%s", test.path, diff)
			}
		})
	}
}

func TestLocatorRoundTrip(t *testing.T) {
	for fileID := uint8(0); fileID <= 7; fileID++ {
		for _, offset := range []uint32{0, 128, 256, 128 * 1000} {
			data := packLocator(fileID, offset)
			entry := IndexHashTableEntry{Data: data}
			if got := entry.DataFileID(); got != fileID {
				t.Errorf("packLocator(%d, %d).DataFileID() = %d, want %d", fileID, offset, got, fileID)
			}
			if got := entry.DataFileOffset(); got != int64(offset) {
				t.Errorf("packLocator(%d, %d).DataFileOffset() = %d, want %d", fileID, offset, got, offset)
			}
		}
	}
}

package bytesutil

import (
	"bytes"
	"testing"
)

func TestToBytes32(t *testing.T) {
	got := ToBytes32([]byte{0x01, 0x02})
	want := [32]byte{0x01, 0x02}
	if got != want {
		t.Errorf("ToBytes32() = %v, want %v", got, want)
	}

	long := bytes.Repeat([]byte{0xff}, 40)
	if got := ToBytes32(long); got != ToBytes32(long[:32]) {
		t.Error("ToBytes32() did not truncate oversized input")
	}
}

func TestPadTo(t *testing.T) {
	if got := PadTo([]byte{0x01}, 4); !bytes.Equal(got, []byte{0x01, 0x00, 0x00, 0x00}) {
		t.Errorf("PadTo() = %v", got)
	}
	in := []byte{0x01, 0x02, 0x03}
	if got := PadTo(in, 2); !bytes.Equal(got, in) {
		t.Errorf("PadTo() = %v, want original slice", got)
	}
}

func TestUint64ToBytesLittleEndian(t *testing.T) {
	got := Uint64ToBytesLittleEndian(0x0102)
	want := []byte{0x02, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Uint64ToBytesLittleEndian() = %v, want %v", got, want)
	}
}

func TestLowerThan(t *testing.T) {
	a := [32]byte{0x01}
	b := [32]byte{0x02}
	if !LowerThan(a, b) {
		t.Error("expected a < b")
	}
	if LowerThan(b, a) {
		t.Error("expected b >= a")
	}
	if LowerThan(a, a) {
		t.Error("expected equal arrays to compare false")
	}
	// The comparison is byte-wise from the most significant end.
	c := [32]byte{0x01, 0xff}
	d := [32]byte{0x02, 0x00}
	if !LowerThan(c, d) {
		t.Error("expected c < d")
	}
}

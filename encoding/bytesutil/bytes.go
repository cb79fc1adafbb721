// Package bytesutil defines helper methods for converting between byte
// slices and the fixed-size arrays used as block roots.
package bytesutil

import "encoding/binary"

// ToBytes32 is a convenience method for converting a byte slice to a fixed
// 32 byte array. This method will truncate the input if it is larger than
// 32 bytes.
func ToBytes32(x []byte) [32]byte {
	var y [32]byte
	copy(y[:], x)
	return y
}

// PadTo pads a byte slice to the given size. If the byte slice is larger
// than the given size, the original slice is returned.
func PadTo(b []byte, size int) []byte {
	if len(b) > size {
		return b
	}
	return append(b, make([]byte, size-len(b))...)
}

// Uint64ToBytesLittleEndian conversion.
func Uint64ToBytesLittleEndian(i uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	return buf
}

// LowerThan returns true if byte array x is lexicographically lower than y.
func LowerThan(x, y [32]byte) bool {
	for i, b := range x {
		if b < y[i] {
			return true
		}
		if b > y[i] {
			return false
		}
	}
	return false
}

package utils

import "github.com/cespare/xxhash"

func BytesToUint16(upper, lower uint8) uint16 {
	return uint16(upper)<<8 ^ uint16(lower)
}

func Uint16ToBytes(value uint16) (upper, lower uint8) {
	return uint8(value >> 8), uint8(value & 0xFF)
}

// Digest returns a 64-bit hash of b, used to compare memory dumps
// between runs without storing them.
func Digest(b []byte) uint64 {
	return xxhash.Sum64(b)
}

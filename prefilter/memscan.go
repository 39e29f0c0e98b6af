package prefilter

import (
	"encoding/binary"
	"math/bits"
	"runtime"

	"golang.org/x/sys/cpu"
)

// scanWide selects the 8-bytes-at-a-time scan over the byte-by-byte one.
// It is true on every platform except amd64 without SSE2, which Go's
// supported amd64 targets never actually lack; the check is kept explicit
// rather than assumed, mirroring the feature gate a real SIMD tier would
// key off before falling back to this portable one.
var scanWide = runtime.GOARCH != "amd64" || cpu.X86.HasSSE2

// indexByte returns the index of the first occurrence of b in s at or
// after from, or -1.
func indexByte(s []byte, from int, b byte) int {
	if from >= len(s) {
		return -1
	}
	if !scanWide {
		return indexByteScalar(s, from, b)
	}
	return indexByteSWAR(s, from, b)
}

func indexByteScalar(s []byte, from int, b byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// indexByteSWAR implements the SIMD-Within-A-Register zero-byte-detection
// technique: broadcast b across a uint64, XOR it with 8 bytes of input so
// a matching byte becomes 0x00, then test for any zero byte with one
// arithmetic formula instead of eight comparisons.
func indexByteSWAR(s []byte, from int, b byte) int {
	i := from
	if len(s)-i < 8 {
		return indexByteScalar(s, i, b)
	}
	needle := uint64(b) * 0x0101010101010101
	const lo8, hi8 = 0x0101010101010101, 0x8080808080808080
	for ; i+8 <= len(s); i += 8 {
		xor := binary.LittleEndian.Uint64(s[i:]) ^ needle
		hasZero := (xor - lo8) &^ xor & hi8
		if hasZero != 0 {
			return i + bits.TrailingZeros64(hasZero)/8
		}
	}
	return indexByteScalar(s, i, b)
}

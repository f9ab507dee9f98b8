package entropy

import "encoding/binary"

// DrawUint32 reads exactly 4 bytes from src and interprets them as a
// little-endian unsigned 32-bit integer. It aborts the process if the source
// fails.
func DrawUint32(src Source) uint32 {
	var buf [4]byte
	MustRead(src, buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// Draw returns a uniform value in [min, max], both bounds inclusive. The
// bounds are an unordered pair: flipped bounds are swapped, not rejected.
// Equal bounds short-circuit without consuming entropy.
//
// The reduction is a plain modulo, which carries a small bias whenever the
// window does not divide 2^32. The windows drawn in this protocol are small
// bounded counts, and the deployed program was settled against exactly this
// reduction, so the bias is part of the contract and must not be corrected.
func Draw(src Source, min, max uint32) uint32 {
	if min == max {
		return min
	}
	if min > max {
		min, max = max, min
	}

	// Inclusive of max.
	window := (max + 1) - min

	return DrawUint32(src)%window + min
}

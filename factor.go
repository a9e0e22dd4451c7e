package salz

import (
	"encoding/binary"
	"math/bits"
)

// candidates holds, per text position, the two factor candidates found
// against the PSV and NSV suffixes. A side with no usable candidate has
// length 0.
type candidates struct {
	psvOff, psvLen []int32
	nsvOff, nsvLen []int32
}

// matchLen extends a match of text[a:] against text[b:] (a < b) that is
// already known to span skip bytes. It compares 8 bytes at a time and
// isolates the first differing byte with a trailing-zero count; max must
// leave 8 readable bytes above b+max-1, which the reserved literal tail
// guarantees.
func matchLen(text []byte, a, b int32, skip, max int32) int32 {
	n := skip
	for n < max {
		x := binary.LittleEndian.Uint64(text[a+n:])
		y := binary.LittleEndian.Uint64(text[b+n:])
		if x != y {
			n += int32(bits.TrailingZeros64(x^y)) >> 3
			if n > max {
				n = max
			}
			return n
		}
		n += 8
	}
	return max
}

// factorize fills c with the longest PSV and NSV matches for every
// position in [1, n). Lengths are capped so no factor runs into the
// reserved literal tail.
//
// Consecutive positions have correlated matches: if position i-1 matched
// its smaller-side neighbour for l bytes, then shifting both by one keeps
// the first l-1 bytes matching, and the nearest smaller suffix can only
// match at least as far. Carrying l-1 forward as a verified prefix makes
// the total comparison work linear in practice.
func factorize(text []byte, n int, psv, nsv []int32, c *candidates) {
	var psvLen, nsvLen int32
	for i := int32(1); i < int32(n); i++ {
		max := int32(n) - i
		if psvLen > 0 {
			psvLen--
		}
		if nsvLen > 0 {
			nsvLen--
		}

		if p := psv[i]; p < 0 {
			psvLen = 0
			c.psvOff[i], c.psvLen[i] = 0, 0
		} else {
			if psvLen > max {
				psvLen = max
			}
			psvLen = matchLen(text, p, i, psvLen, max)
			c.psvOff[i], c.psvLen[i] = i-p, psvLen
		}

		if q := nsv[i]; q < 0 {
			nsvLen = 0
			c.nsvOff[i], c.nsvLen[i] = 0, 0
		} else {
			if nsvLen > max {
				nsvLen = max
			}
			nsvLen = matchLen(text, q, i, nsvLen, max)
			c.nsvOff[i], c.nsvLen[i] = i-q, nsvLen
		}
	}
}

package salz

// derivePSVNSV computes, for every text position, the nearest entry to
// its left and right in suffix-array order that holds a smaller text
// position (the previous and next smaller values), or -1 if there is
// none. The PSV suffix sorts before the position's own suffix, the NSV
// suffix after it.
//
// sa holds the suffix array at sa[1:n+1], flanked by -1 sentinels at
// sa[0] and sa[n+1]. The scan keeps a stack of strictly increasing
// values inside sa itself, so sa is destroyed; each position is pushed
// and popped exactly once, making the pass linear.
func derivePSVNSV(sa, psv, nsv []int32) {
	top := 0
	for i := 1; i < len(sa); i++ {
		v := sa[i]
		for sa[top] > v {
			psv[sa[top]] = sa[top-1]
			nsv[sa[top]] = v
			top--
		}
		top++
		sa[top] = v
	}
}

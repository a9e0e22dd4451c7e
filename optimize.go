package salz

const literalBits = 1 + 8

// parse holds the optimal decision per position: the chosen factor
// offset and length (offset 0, length 1 for a literal) and the minimal
// number of bits needed to encode the rest of the block from there.
type parse struct {
	off    []int32
	length []int32
	cost   []int64
}

// optimize runs a single-source shortest path from the end of the block
// backwards, choosing at every position between a literal edge and the
// two candidate factor edges. Costs are the exact codeword lengths the
// emitter will produce. At equal cost a literal wins over a factor and
// the PSV factor wins over the NSV factor, so the decisions, and with
// them the output bytes, are deterministic.
func optimize(c *candidates, n int, p *parse) {
	p.cost[n] = 0
	for i := n - 1; i >= 1; i-- {
		best := literalBits + p.cost[i+1]
		off, length := int32(0), int32(1)

		if l := c.psvLen[i]; l >= minFactorLen {
			d := c.psvOff[i]
			cost := int64(1+factorOffsBits(uint32(d))+factorLenBits(uint32(l))) + p.cost[i+int(l)]
			if cost < best {
				best, off, length = cost, d, l
			}
		}
		if l := c.nsvLen[i]; l >= minFactorLen {
			d := c.nsvOff[i]
			cost := int64(1+factorOffsBits(uint32(d))+factorLenBits(uint32(l))) + p.cost[i+int(l)]
			if cost < best {
				best, off, length = cost, d, l
			}
		}

		p.cost[i], p.off[i], p.length[i] = best, off, length
	}

	// Position 0 has no prior context to reference.
	p.cost[0] = literalBits + p.cost[1]
	p.off[0], p.length[0] = 0, 1
}

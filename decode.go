package salz

// DecodeBlock decompresses one encoded block from src into dst and
// returns the number of bytes written. Trailing bytes past the length
// declared in the block header are ignored.
func DecodeBlock(src, dst []byte) (int, error) {
	if len(src) < 4 {
		return 0, ErrMalformed
	}
	typ := src[0]
	payloadLen := int(src[1])<<16 | int(src[2])<<8 | int(src[3])
	if 4+payloadLen > len(src) {
		return 0, ErrMalformed
	}
	payload := src[4 : 4+payloadLen]

	switch typ {
	case blockPlain:
		if payloadLen > len(dst) {
			return 0, ErrOutputTooSmall
		}
		copy(dst, payload)
		return payloadLen, nil
	case blockSALZ:
		return decodeStream(payload, dst)
	}
	return 0, ErrMalformed
}

// decodeStream replays the token stream: a clear flag bit introduces one
// raw literal byte, a set flag bit a back-reference. Every read and
// every copy is bounds checked; nothing in the stream is trusted.
func decodeStream(payload, dst []byte) (int, error) {
	r := newBitReader(payload)
	if r.err != nil {
		return 0, r.err
	}
	pos := 0
	for !r.empty() {
		if r.readBit() == 0 {
			b := r.readByte()
			if r.err != nil {
				return 0, r.err
			}
			if pos >= len(dst) {
				return 0, ErrOutputTooSmall
			}
			dst[pos] = b
			pos++
			continue
		}
		hi := r.readVNibble()
		lo := r.readByte()
		l := int(r.readGR3()) + minFactorLen
		if r.err != nil {
			return 0, r.err
		}
		d64 := (int64(hi)<<8 | int64(lo)) + 1
		if d64 > int64(pos) {
			return 0, ErrMalformed
		}
		d := int(d64)
		if pos+l > len(dst) {
			return 0, ErrOutputTooSmall
		}
		copyBackRef(dst, pos, d, l)
		pos += l
	}
	return pos, nil
}

// copyBackRef copies l bytes from dst[pos-d:] to dst[pos:]. When d < l
// the regions overlap and the copy must be byte-oriented so that the
// just-written bytes replicate, which is how short-period runs are
// expressed. The caller has checked both bounds.
func copyBackRef(dst []byte, pos, d, l int) {
	if d >= l {
		copy(dst[pos:pos+l], dst[pos-d:])
		return
	}
	for i := 0; i < l; i++ {
		dst[pos+i] = dst[pos-d+i]
	}
}

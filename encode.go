package salz

import (
	"errors"
	"fmt"
	"time"

	"github.com/andybalholm/salz/internal/sais"
)

const (
	blockPlain = 0
	blockSALZ  = 1

	// maxBlockLen is the largest payload the 24-bit header length can frame.
	maxBlockLen = 1<<24 - 1

	// tailLen bytes at the end of every block are emitted as literals and
	// excluded from the match search, so that factor copies and match
	// comparisons may read 8 bytes at a time.
	tailLen = 8
)

// EncodedLenMax returns the worst-case encoded size of an n-byte block:
// the header, the plain fallback, and one 64-bit slot per 64 token bits.
func EncodedLenMax(n int) int {
	return 4 + n + (n+63)/64*8
}

// Timings receives per-phase durations of an encode when attached to an
// Encoder. Plain struct, owned by the caller; nothing global.
type Timings struct {
	Sort   time.Duration
	PSVNSV time.Duration
	Factor time.Duration
	Parse  time.Duration
	Emit   time.Duration
}

// An Encoder compresses independent blocks, reusing its working buffers
// (suffix array, candidate and decision tables) between calls. The zero
// value is ready to use. An Encoder must not be used concurrently;
// distinct Encoders are independent.
type Encoder struct {
	// Timings, if non-nil, is filled with phase durations on each call.
	Timings *Timings

	sa   []int32
	psv  []int32
	nsv  []int32
	cand candidates
	par  parse
}

func (e *Encoder) grow(n int) {
	if cap(e.sa) < n+2 {
		e.sa = make([]int32, n+2)
		e.psv = make([]int32, n)
		e.nsv = make([]int32, n)
		e.cand.psvOff = make([]int32, n)
		e.cand.psvLen = make([]int32, n)
		e.cand.nsvOff = make([]int32, n)
		e.cand.nsvLen = make([]int32, n)
		e.par.off = make([]int32, n)
		e.par.length = make([]int32, n)
		e.par.cost = make([]int64, n+1)
	}
	e.sa = e.sa[:n+2]
	e.psv = e.psv[:n]
	e.nsv = e.nsv[:n]
	e.cand.psvOff = e.cand.psvOff[:n]
	e.cand.psvLen = e.cand.psvLen[:n]
	e.cand.nsvOff = e.cand.nsvOff[:n]
	e.cand.nsvLen = e.cand.nsvLen[:n]
	e.par.off = e.par.off[:n]
	e.par.length = e.par.length[:n]
	e.par.cost = e.par.cost[:n+1]
}

// EncodeBlock compresses src into dst and returns the number of bytes
// written. dst must hold EncodedLenMax(len(src)) bytes. If the block
// does not compress, it is stored as a plain block of len(src)+4 bytes.
func (e *Encoder) EncodeBlock(src, dst []byte) (int, error) {
	if len(src) < tailLen+1 {
		return 0, ErrInputTooSmall
	}
	if len(src) > maxBlockLen {
		return 0, ErrBlockTooLarge
	}
	if len(dst) < EncodedLenMax(len(src)) {
		return 0, ErrOutputTooSmall
	}
	n := len(src) - tailLen
	e.grow(n)

	sw := stopwatch{on: e.Timings != nil}
	sw.start()

	if err := sais.Sais(src[:n], e.sa[1:n+1]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSortFailed, err)
	}
	e.sa[0], e.sa[n+1] = -1, -1
	lapSort := sw.lap()

	derivePSVNSV(e.sa, e.psv, e.nsv)
	lapPSVNSV := sw.lap()

	factorize(src, n, e.psv, e.nsv, &e.cand)
	lapFactor := sw.lap()

	optimize(&e.cand, n, &e.par)
	lapParse := sw.lap()

	w := newBitWriter(dst[4:])
	emitParse(w, src, &e.par, n)
	streamLen, err := w.finish()
	if err != nil {
		// Slot padding can push a cheap-in-bits stream past the plain
		// fallback's capacity; such a block is incompressible anyway.
		if !errors.Is(err, ErrOutputTooSmall) {
			return 0, err
		}
		streamLen = n + tailLen + 1
	}
	if e.Timings != nil {
		*e.Timings = Timings{
			Sort:   lapSort,
			PSVNSV: lapPSVNSV,
			Factor: lapFactor,
			Parse:  lapParse,
			Emit:   sw.lap(),
		}
	}

	if streamLen >= n+tailLen+1 {
		// The stream did not beat storing the block as-is.
		putBlockHeader(dst, blockPlain, len(src))
		copy(dst[4:], src)
		return 4 + len(src), nil
	}
	putBlockHeader(dst, blockSALZ, streamLen)
	return 4 + streamLen, nil
}

// EncodeBlock compresses src into dst with a throwaway Encoder.
func EncodeBlock(src, dst []byte) (int, error) {
	var e Encoder
	return e.EncodeBlock(src, dst)
}

// emitParse walks the chosen decisions over [0, n) and then forces the
// reserved tail bytes out as literals.
func emitParse(w *bitWriter, src []byte, p *parse, n int) {
	for i := 0; i < n; {
		l := int(p.length[i])
		if l == 1 && p.off[i] == 0 {
			w.writeBit(0)
			w.writeByte(src[i])
			i++
			continue
		}
		w.writeBit(1)
		d := uint32(p.off[i]) - 1
		w.writeVNibble(d >> 8)
		w.writeByte(byte(d))
		w.writeGR3(uint32(l) - minFactorLen)
		i += l
	}
	for _, b := range src[n:] {
		w.writeBit(0)
		w.writeByte(b)
	}
}

func putBlockHeader(dst []byte, typ byte, payloadLen int) {
	dst[0] = typ
	dst[1] = byte(payloadLen >> 16)
	dst[2] = byte(payloadLen >> 8)
	dst[3] = byte(payloadLen)
}

type stopwatch struct {
	on   bool
	last time.Time
}

func (s *stopwatch) start() {
	if s.on {
		s.last = time.Now()
	}
}

func (s *stopwatch) lap() time.Duration {
	if !s.on {
		return 0
	}
	now := time.Now()
	d := now.Sub(s.last)
	s.last = now
	return d
}

package salz

import (
	"encoding/binary"
	"hash"
	"io"

	"github.com/pierrec/xxHash/xxHash32"
)

// Frame layout: magic, vbyte block size, then for each block a vbyte
// length prefix followed by the encoded block, a zero length as
// terminator, and the xxHash32 of the plain content, little-endian.
const (
	frameMagic = 0x5a4c4173 // "sALZ" when stored little-endian

	// DefaultBlockSize is the block size Writer uses when none is set.
	DefaultBlockSize = 1 << 16
)

// A Writer compresses data written to it into a framed stream of
// independent blocks on Dest. Close must be called to flush the last
// block and write the frame trailer.
type Writer struct {
	Dest io.Writer

	// BlockSize is the number of bytes buffered per block.
	// If zero, DefaultBlockSize is used.
	BlockSize int

	// Timings, if non-nil, receives the per-phase encoder durations of
	// the most recently encoded block. Blocks of tailLen bytes or fewer
	// are framed plain and leave it unchanged.
	Timings *Timings

	enc         Encoder
	buf         []byte
	n           int
	dst         []byte
	scratch     []byte
	hasher      hash.Hash32
	wroteHeader bool
	err         error
}

func (w *Writer) init() {
	if w.BlockSize <= 0 {
		w.BlockSize = DefaultBlockSize
	}
	if w.BlockSize > maxBlockLen {
		w.BlockSize = maxBlockLen
	}
	if w.buf == nil {
		w.buf = make([]byte, w.BlockSize)
		w.dst = make([]byte, EncodedLenMax(w.BlockSize))
		w.hasher = xxHash32.New(0)
	}
}

func (w *Writer) header() error {
	w.scratch = binary.LittleEndian.AppendUint32(w.scratch[:0], frameMagic)
	w.scratch = appendVByte(w.scratch, uint32(w.BlockSize))
	w.wroteHeader = true
	_, err := w.Dest.Write(w.scratch)
	return err
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.init()
	total := 0
	for len(p) > 0 {
		c := copy(w.buf[w.n:], p)
		w.n += c
		p = p[c:]
		total += c
		if w.n == len(w.buf) {
			if w.err = w.flushBlock(); w.err != nil {
				return total, w.err
			}
		}
	}
	return total, nil
}

func (w *Writer) flushBlock() error {
	block := w.buf[:w.n]
	w.n = 0
	if !w.wroteHeader {
		if err := w.header(); err != nil {
			return err
		}
	}

	var m int
	if len(block) > tailLen {
		w.enc.Timings = w.Timings
		var err error
		m, err = w.enc.EncodeBlock(block, w.dst)
		if err != nil {
			return err
		}
	} else {
		// Too short to search; frame it as a plain block.
		putBlockHeader(w.dst, blockPlain, len(block))
		copy(w.dst[4:], block)
		m = 4 + len(block)
	}

	w.scratch = appendVByte(w.scratch[:0], uint32(m))
	if _, err := w.Dest.Write(w.scratch); err != nil {
		return err
	}
	if _, err := w.Dest.Write(w.dst[:m]); err != nil {
		return err
	}
	w.hasher.Write(block)
	return nil
}

// Close flushes buffered data and writes the frame trailer. It does not
// close Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	w.init()
	if w.n > 0 || !w.wroteHeader {
		if !w.wroteHeader {
			if w.err = w.header(); w.err != nil {
				return w.err
			}
		}
		if w.n > 0 {
			if w.err = w.flushBlock(); w.err != nil {
				return w.err
			}
		}
	}
	w.scratch = appendVByte(w.scratch[:0], 0)
	w.scratch = binary.LittleEndian.AppendUint32(w.scratch, w.hasher.Sum32())
	if _, w.err = w.Dest.Write(w.scratch); w.err != nil {
		return w.err
	}
	w.err = errClosed
	return nil
}

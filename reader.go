package salz

import (
	"bufio"
	"encoding/binary"
	"errors"
	"hash"
	"io"

	"github.com/pierrec/xxHash/xxHash32"
)

// A Reader decompresses a framed stream produced by Writer. The content
// checksum in the trailer is verified before Read reports io.EOF.
type Reader struct {
	src        *bufio.Reader
	blockSize  int
	comp       []byte
	dec        []byte
	pending    []byte
	hasher     hash.Hash32
	readHeader bool
	err        error
}

// NewReader returns a Reader decompressing from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		src:    bufio.NewReader(r),
		hasher: xxHash32.New(0),
	}
}

func (r *Reader) header() error {
	var magic [4]byte
	if _, err := io.ReadFull(r.src, magic[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = ErrMalformed
		}
		return err
	}
	if binary.LittleEndian.Uint32(magic[:]) != frameMagic {
		return ErrMalformed
	}
	blockSize, err := readVByte(r.src)
	if err != nil {
		return frameErr(err)
	}
	if blockSize == 0 || blockSize > maxBlockLen {
		return ErrMalformed
	}
	r.blockSize = int(blockSize)
	r.comp = make([]byte, EncodedLenMax(r.blockSize))
	r.dec = make([]byte, r.blockSize)
	r.readHeader = true
	return nil
}

// nextBlock reads and decodes one framed block, or verifies the trailer
// and returns io.EOF.
func (r *Reader) nextBlock() error {
	m, err := readVByte(r.src)
	if err != nil {
		return frameErr(err)
	}
	if m == 0 {
		var sum [4]byte
		if _, err := io.ReadFull(r.src, sum[:]); err != nil {
			return frameErr(err)
		}
		if binary.LittleEndian.Uint32(sum[:]) != r.hasher.Sum32() {
			return ErrChecksum
		}
		return io.EOF
	}
	if int(m) > len(r.comp) {
		return ErrMalformed
	}
	if _, err := io.ReadFull(r.src, r.comp[:m]); err != nil {
		return frameErr(err)
	}
	n, err := DecodeBlock(r.comp[:m], r.dec)
	if err != nil {
		// The frame promised blocks of at most blockSize, so an
		// overflowing block is corruption, not a small buffer.
		if errors.Is(err, ErrOutputTooSmall) {
			err = ErrMalformed
		}
		return err
	}
	r.hasher.Write(r.dec[:n])
	r.pending = r.dec[:n]
	return nil
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if !r.readHeader {
		if r.err = r.header(); r.err != nil {
			return 0, r.err
		}
	}
	for len(r.pending) == 0 {
		if r.err = r.nextBlock(); r.err != nil {
			return 0, r.err
		}
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// frameErr converts an end of stream inside a frame structure into a
// hard error; a frame always ends with its trailer.
func frameErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrMalformed
	}
	return err
}

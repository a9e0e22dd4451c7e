package salz

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vlcSamples covers every codeword-length boundary plus random values.
func vlcSamples() []uint32 {
	vals := []uint32{0, 1, 2, 7, 8, 9, 127, 128, 129, 255, 256}
	for _, cut := range vnibbleCut {
		vals = append(vals, cut-1, cut, cut+1)
	}
	for _, cut := range vbyteCut {
		vals = append(vals, cut-1, cut, cut+1)
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		vals = append(vals, uint32(rng.Int63n(1<<31)))
	}
	return vals
}

func TestVNibbleRoundTrip(t *testing.T) {
	for _, v := range vlcSamples() {
		code, n := encodeVNibble(v)
		require.Equal(t, vnibbleSize(v), n, "val %d", v)
		require.Zero(t, code>>(4*n), "codeword for %d longer than its size", v)

		buf := make([]byte, 16)
		w := newBitWriter(buf)
		w.writeVNibble(v)
		_, err := w.finish()
		require.NoError(t, err)

		r := newBitReader(buf)
		require.Equal(t, v, r.readVNibble(), "val %d", v)
		require.NoError(t, r.err)
	}
}

func TestVNibbleSizeMonotonic(t *testing.T) {
	prev := 1
	for _, cut := range vnibbleCut {
		assert.Equal(t, prev, vnibbleSize(cut-1))
		assert.Equal(t, prev+1, vnibbleSize(cut))
		prev++
	}
}

func TestVByteRoundTrip(t *testing.T) {
	for _, v := range append(vlcSamples(), 0xffffffff) {
		enc := appendVByte(nil, v)
		require.Len(t, enc, vbyteSize(v), "val %d", v)
		require.NotZero(t, enc[len(enc)-1]&0x80, "val %d missing terminator", v)

		got, err := readVByte(bytes.NewReader(enc))
		require.NoError(t, err)
		require.Equal(t, v, got, "val %d", v)
	}
}

func TestVByteUniquePrefix(t *testing.T) {
	// Redundancy elimination: consecutive values at a length boundary
	// must produce different codewords of the expected lengths.
	a := appendVByte(nil, 127)
	b := appendVByte(nil, 128)
	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
	assert.NotEqual(t, a, b[:1])
}

func TestVByteTruncated(t *testing.T) {
	enc := appendVByte(nil, 1_000_000)
	_, err := readVByte(bytes.NewReader(enc[:len(enc)-1]))
	assert.Error(t, err)
}

func TestGR3RoundTrip(t *testing.T) {
	vals := []uint32{0, 1, 7, 8, 9, 15, 16, 63, 64, 100, 1000, 5000}
	for _, v := range vals {
		buf := make([]byte, 8+(gr3Bits(v)+7)/8+8)
		w := newBitWriter(buf)
		w.writeGR3(v)
		bitsWritten := (w.pos/8-1)*64 + w.nbits
		require.Equal(t, gr3Bits(v), bitsWritten, "val %d", v)
		_, err := w.finish()
		require.NoError(t, err)

		r := newBitReader(buf)
		require.Equal(t, v, r.readGR3(), "val %d", v)
		require.NoError(t, r.err)
	}
}

func TestFactorCostFormulas(t *testing.T) {
	assert.Equal(t, 12, factorOffsBits(1))
	assert.Equal(t, 12, factorOffsBits(256))
	assert.Equal(t, 12, factorOffsBits(2048))
	assert.Equal(t, 16, factorOffsBits(2049))
	assert.Equal(t, 4, factorLenBits(3))
	assert.Equal(t, 4, factorLenBits(10))
	assert.Equal(t, 5, factorLenBits(11))
}

package salz

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameRoundTrip(t *testing.T, data []byte, blockSize int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := &Writer{Dest: &buf, BlockSize: blockSize}
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, w.Close())

	got, err := io.ReadAll(NewReader(bytes.NewReader(buf.Bytes())))
	require.NoError(t, err)
	// io.ReadAll returns an empty, non-nil slice for an empty stream,
	// which require.Equal would tell apart from a nil data slice.
	require.Equal(t, string(data), string(got))
	return buf.Bytes()
}

func TestFrameRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(101))
	data := synthCorpus(rng, 200*1024)
	frameRoundTrip(t, data, 1<<16)
}

func TestFrameMagic(t *testing.T) {
	enc := frameRoundTrip(t, []byte("hello, frame"), 1<<12)
	assert.Equal(t, []byte("sALZ"), enc[:4])
}

func TestFrameBlockBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(111))
	for _, size := range []int{0, 1, 8, 9, 100, 1 << 12, 1<<12 + 1, 3 << 12} {
		data := synthCorpus(rng, size)
		frameRoundTrip(t, data, 1<<12)
	}
}

func TestFrameShortTail(t *testing.T) {
	// The final chunk is shorter than a searchable block and must be
	// framed plain.
	data := []byte("abc")
	frameRoundTrip(t, data, 1<<12)
}

func TestFrameSmallWrites(t *testing.T) {
	rng := rand.New(rand.NewSource(121))
	data := synthCorpus(rng, 30000)
	var buf bytes.Buffer
	w := &Writer{Dest: &buf, BlockSize: 1 << 12}
	for pos := 0; pos < len(data); {
		n := 1 + rng.Intn(700)
		if pos+n > len(data) {
			n = len(data) - pos
		}
		_, err := w.Write(data[pos : pos+n])
		require.NoError(t, err)
		pos += n
	}
	require.NoError(t, w.Close())

	got, err := io.ReadAll(NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestFrameChecksumMismatch(t *testing.T) {
	data := synthCorpus(rand.New(rand.NewSource(131)), 5000)
	var buf bytes.Buffer
	w := &Writer{Dest: &buf, BlockSize: 1 << 12}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Flip a bit in the stored checksum.
	enc := buf.Bytes()
	enc[len(enc)-1] ^= 0x01
	_, err = io.ReadAll(NewReader(bytes.NewReader(enc)))
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestFrameTruncated(t *testing.T) {
	data := synthCorpus(rand.New(rand.NewSource(141)), 5000)
	var buf bytes.Buffer
	w := &Writer{Dest: &buf, BlockSize: 1 << 12}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	enc := buf.Bytes()
	for _, cut := range []int{1, 3, len(enc) / 2, len(enc) - 1} {
		_, err := io.ReadAll(NewReader(bytes.NewReader(enc[:cut])))
		assert.Error(t, err, "cut at %d", cut)
	}
}

func TestFrameBadMagic(t *testing.T) {
	_, err := io.ReadAll(NewReader(bytes.NewReader([]byte("nope////////"))))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestWriterAfterClose(t *testing.T) {
	w := &Writer{Dest: io.Discard}
	require.NoError(t, w.Close())
	_, err := w.Write([]byte("late"))
	assert.Error(t, err)
}

// Package salz implements SALZ, a lossless LZ77-family block compressor
// that finds matches globally and exactly with a suffix array.
//
// For each block, the encoder sorts the suffixes of the input, derives for
// every position the nearest earlier text positions on both sides of it
// in the suffix array (PSV and NSV), measures the longest match
// against each, and then picks the cheapest parse by a shortest-path pass
// over bit-exact code lengths. Tokens are written as a mix of raw bytes,
// Golomb-Rice codes and variable-length nibble codes, interleaved in
// 64-bit bursts so the decoder is a single forward pass.
//
// EncodeBlock and DecodeBlock operate on one block at a time:
//
//	dst := make([]byte, salz.EncodedLenMax(len(data)))
//	n, err := salz.EncodeBlock(data, dst)
//
// Writer and Reader wrap them in a framed multi-block stream with a
// content checksum:
//
//	w := &salz.Writer{Dest: f, BlockSize: 1 << 16}
//	w.Write(data)
//	w.Close()
package salz

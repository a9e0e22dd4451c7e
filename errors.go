package salz

import "errors"

// Sentinel errors for block encoding and decoding.
var (
	// ErrInputTooSmall is returned when a block is shorter than 9 bytes;
	// the codec reserves the final 8 bytes of every block as literals.
	ErrInputTooSmall = errors.New("salz: input too small")
	// ErrBlockTooLarge is returned when a block does not fit the 24-bit
	// payload length field of the block header.
	ErrBlockTooLarge = errors.New("salz: block too large")
	// ErrOutputTooSmall is returned when the destination buffer cannot
	// hold the result. Size encode destinations with EncodedLenMax.
	ErrOutputTooSmall = errors.New("salz: output too small")
	// ErrSortFailed is returned when the suffix sorter rejects the input.
	ErrSortFailed = errors.New("salz: suffix sort failed")
	// ErrMalformed is returned when decoding input that is truncated,
	// has an unknown block type, or contains a token that would read or
	// write out of bounds.
	ErrMalformed = errors.New("salz: malformed input")
	// ErrChecksum is returned by Reader when the frame content checksum
	// does not match the decoded data.
	ErrChecksum = errors.New("salz: checksum mismatch")
)

// errClosed guards Writer against writes after Close.
var errClosed = errors.New("salz: writer is closed")

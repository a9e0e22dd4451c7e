// Package sais builds suffix arrays by induced sorting.
//
// It exists so that the compressor can treat suffix sorting as a
// black box with a narrow contract: Sais fills sa with a permutation
// of [0, len(text)) such that the suffixes text[sa[i]:] are in
// strictly increasing lexicographic order.
package sais

import (
	"errors"
	"math"
)

var (
	ErrSizeMismatch = errors.New("sais: sa length does not match text length")
	ErrTooLong      = errors.New("sais: text longer than MaxInt32")
)

// Sais computes the suffix array of text into sa.
// sa must have the same length as text; its previous contents are discarded.
func Sais(text []byte, sa []int32) error {
	if len(sa) != len(text) {
		return ErrSizeMismatch
	}
	if len(text) > math.MaxInt32 {
		return ErrTooLong
	}
	for i := range sa {
		sa[i] = 0
	}
	sais_8_32(text, 256, sa, make([]int32, 2*256))
	return nil
}

package salz

import "fmt"

// minFactorLen is the shortest back-reference the format can express.
const minFactorLen = 3

// A Match is one step of an LZ77 parse.
type Match struct {
	Unmatched int // unmatched bytes since the previous match
	Length    int // matched bytes; 0 for a trailing literal run
	Distance  int // how far back to copy from
}

// appendMatches converts the per-position decisions of p into the Match
// representation, covering positions [0, end). Runs of literal decisions
// collapse into the Unmatched count of the following match.
func appendMatches(dst []Match, p *parse, end int) []Match {
	unmatched := 0
	for i := 0; i < end; {
		l := int(p.length[i])
		if l == 1 && p.off[i] == 0 {
			unmatched++
			i++
			continue
		}
		dst = append(dst, Match{
			Unmatched: unmatched,
			Length:    l,
			Distance:  int(p.off[i]),
		})
		unmatched = 0
		i += l
	}
	if unmatched > 0 {
		dst = append(dst, Match{Unmatched: unmatched})
	}
	return dst
}

// matchText renders src through matches with factors replaced by
// <Length,Distance> symbols. Tests use it to inspect a parse.
func matchText(dst []byte, src []byte, matches []Match) []byte {
	pos := 0
	for _, m := range matches {
		if m.Unmatched > 0 {
			dst = append(dst, src[pos:pos+m.Unmatched]...)
			pos += m.Unmatched
		}
		if m.Length > 0 {
			dst = append(dst, []byte(fmt.Sprintf("<%d,%d>", m.Length, m.Distance))...)
			pos += m.Length
		}
	}
	if pos < len(src) {
		dst = append(dst, src[pos:]...)
	}
	return dst
}

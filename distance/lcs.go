package distance

import (
	"math/bits"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Oracle computes insertion/deletion distances between strings.
type Oracle interface {
	// Distance returns the number of insertions and deletions needed to turn a into b
	Distance(a, b string) int
	// Anchor fixes a for repeated queries against it
	Anchor(a string) Anchored
}

// Anchored answers distance queries from a fixed anchor string.
type Anchored interface {
	// From returns the distance between the anchor and b
	From(b string) int
}

// LCS is the reference Oracle, stateless and safe for concurrent use.
type LCS struct{}

var _ Oracle = LCS{}

// Distance returns |a| + |b| - 2·lcs(a, b).
func (LCS) Distance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return la + lb
	}
	return la + lb - 2*matchr.LongestCommonSubsequence(a, b)
}

// Anchor precomputes the match masks of a.
func (LCS) Anchor(a string) Anchored {
	return NewAnchor(a)
}

// Similitude returns the length of the longest common subsequence of a and b
// as implied by their distance.
func Similitude(o Oracle, a, b string) int {
	return (utf8.RuneCountInString(a) + utf8.RuneCountInString(b) - o.Distance(a, b)) / 2
}

// AnchoredSimilitude is Similitude for an anchored query.
func AnchoredSimilitude(anchor string, q Anchored, b string) int {
	return (utf8.RuneCountInString(anchor) + utf8.RuneCountInString(b) - q.From(b)) / 2
}

// Anchor is a bit-parallel LCS engine for one fixed string.
//
// Bit i of masks[r] is set when the i-th rune of the anchor is r. For every
// rune y of the query the state vector V is updated with
//
//	U = V & M[y]
//	V = (V + U) | (V - U)
//
// and once the query is consumed lcs = number of zero bits of V among the
// anchor's positions. Since U is a subset of V, V - U never borrows and is
// computed as V &^ U; only the addition carries between words.
type Anchor struct {
	length int
	words  int
	masks  map[rune][]uint64
	last   uint64 // valid bits of the highest word
}

var _ Anchored = (*Anchor)(nil)

// NewAnchor builds the match masks of a.
func NewAnchor(a string) *Anchor {
	runes := []rune(a)
	n := len(runes)
	words := (n + 63) / 64
	an := &Anchor{
		length: n,
		words:  words,
		masks:  make(map[rune][]uint64),
		last:   ^uint64(0),
	}
	if rem := n % 64; rem != 0 {
		an.last = (uint64(1) << uint(rem)) - 1
	}
	for i, r := range runes {
		m, ok := an.masks[r]
		if !ok {
			m = make([]uint64, words)
			an.masks[r] = m
		}
		m[i/64] |= uint64(1) << uint(i%64)
	}
	return an
}

// LCS returns the length of the longest common subsequence of the anchor and b.
func (an *Anchor) LCS(b string) int {
	if an.length == 0 || b == "" {
		return 0
	}
	v := make([]uint64, an.words)
	for k := range v {
		v[k] = ^uint64(0)
	}
	v[an.words-1] = an.last
	for _, y := range b {
		m, ok := an.masks[y]
		if !ok {
			// V & 0 = 0, the update leaves V unchanged
			continue
		}
		var carry uint64
		for k := 0; k < an.words; k++ {
			u := v[k] & m[k]
			sum, c := bits.Add64(v[k], u, carry)
			v[k] = sum | (v[k] &^ u)
			carry = c
		}
	}
	ones := 0
	for k := 0; k < an.words-1; k++ {
		ones += bits.OnesCount64(v[k])
	}
	ones += bits.OnesCount64(v[an.words-1] & an.last)
	return an.length - ones
}

// From returns the distance between the anchor and b.
func (an *Anchor) From(b string) int {
	return an.length + utf8.RuneCountInString(b) - 2*an.LCS(b)
}

// Package cluster implements analogical clusters: ordered sequences of
// ratios A : B sharing one analogical relation, and analogies, the clusters of
// exactly two ratios that satisfy the formal constraints of proportional
// analogy.
package cluster

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/projectdiscovery/analogx/distance"
)

// SampleSize is the number of anchors used by the median sort.
const SampleSize = 100

// Ratio is an ordered pair of strings A : B.
type Ratio struct {
	Left  string
	Right string
}

// Flip returns B : A.
func (r Ratio) Flip() Ratio {
	return Ratio{Left: r.Right, Right: r.Left}
}

func (r Ratio) String() string {
	return r.Left + RatioSymbol + r.Right
}

// State records which one-way transitions a cluster went through.
type State uint8

const (
	// Normalized is set once the orientation of the ratios is fixed
	Normalized State = 1 << iota
	// Sorted is set once the ratios are ordered by closeness to the median ratio
	Sorted
	// Attributed is set once the attributes are computed
	Attributed
)

// Has reports whether all bits of s2 are set in s.
func (s State) Has(s2 State) bool {
	return s&s2 == s2
}

// Attributes are the abstract description of a cluster used to compare
// clusters independently of their words.
type Attributes struct {
	// Distance is d(A, B) of the first ratio
	Distance int
	// LeftDiff is multiset(A) - multiset(B), sorted runes
	LeftDiff string
	// RightDiff is multiset(B) - multiset(A), sorted runes
	RightDiff string
}

// Cluster is an ordered sequence of at least two ratios.
type Cluster struct {
	ratios     []Ratio
	state      State
	attributes Attributes
}

// New returns a cluster over a copy of ratios.
func New(ratios []Ratio) (*Cluster, error) {
	if len(ratios) < 2 {
		return nil, fmt.Errorf("%w: %d ratios, need at least 2", ErrInvalidCluster, len(ratios))
	}
	return &Cluster{ratios: append([]Ratio(nil), ratios...)}, nil
}

// FromPairs builds a cluster from pairs of words, every pair must have
// exactly two members.
func FromPairs(pairs [][]string) (*Cluster, error) {
	ratios := make([]Ratio, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: ratio %d has %d members", ErrInvalidCluster, i, len(pair))
		}
		ratios = append(ratios, Ratio{Left: pair[0], Right: pair[1]})
	}
	return New(ratios)
}

// MustNew is like New but panics on invalid input. Intended for tests and
// literals.
func MustNew(ratios ...Ratio) *Cluster {
	c, err := New(ratios)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of ratios.
func (c *Cluster) Len() int {
	return len(c.ratios)
}

// Ratio returns the i-th ratio.
func (c *Cluster) Ratio(i int) Ratio {
	return c.ratios[i]
}

// Ratios returns a copy of the ratios.
func (c *Cluster) Ratios() []Ratio {
	return append([]Ratio(nil), c.ratios...)
}

// State returns the transitions the cluster went through.
func (c *Cluster) State() State {
	return c.state
}

// Lefts returns the left members in order.
func (c *Cluster) Lefts() []string {
	out := make([]string, len(c.ratios))
	for i, r := range c.ratios {
		out[i] = r.Left
	}
	return out
}

// Rights returns the right members in order.
func (c *Cluster) Rights() []string {
	out := make([]string, len(c.ratios))
	for i, r := range c.ratios {
		out[i] = r.Right
	}
	return out
}

// Normalize fixes the orientation of the cluster.
//
// If the right member of the first ratio A : B is shorter than its left
// member, every ratio is flipped so that A is the shorter one. For an analogy
// A : B :: C : D the means are then exchanged, giving A : C :: B : D, when A
// shares a longer common subsequence with C than with B. Both orientations
// describe the same proportion; the rule only makes the output stable.
func (c *Cluster) Normalize(o distance.Oracle) {
	if c.state.Has(Normalized) {
		return
	}
	first := c.ratios[0]
	if utf8.RuneCountInString(first.Right) < utf8.RuneCountInString(first.Left) {
		for i, r := range c.ratios {
			c.ratios[i] = r.Flip()
		}
	}
	if len(c.ratios) == 2 {
		a, b, cc := c.ratios[0].Left, c.ratios[0].Right, c.ratios[1].Left
		q := o.Anchor(a)
		if distance.AnchoredSimilitude(a, q, b) < distance.AnchoredSimilitude(a, q, cc) {
			c.ratios[0].Right, c.ratios[1].Left = cc, b
		}
	}
	c.state |= Normalized
}

// Sort orders the ratios by closeness to the median ratio, see SortByMedian.
// rng drives the sampling of large clusters, a nil rng is seeded from the clock.
func (c *Cluster) Sort(o distance.Oracle, rng *rand.Rand) {
	if c.state.Has(Sorted) {
		return
	}
	items := make([]string, len(c.ratios))
	for i, r := range c.ratios {
		items[i] = r.String()
	}
	order := SortByMedian(o, items, rng)
	sorted := make([]Ratio, len(c.ratios))
	for i, idx := range order {
		sorted[i] = c.ratios[idx]
	}
	c.ratios = sorted
	c.state |= Sorted
}

// SortByMedian returns the indices of items ordered by ascending sum of
// distances to the other items, median strings first. Ties keep the original
// order.
//
// With more than SampleSize items the sums are computed against a random
// sample of SampleSize anchors only, so the order of large inputs may differ
// between runs with different rng states.
func SortByMedian(o distance.Oracle, items []string, rng *rand.Rand) []int {
	n := len(items)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sample := append([]int(nil), order...)
	if n > SampleSize {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rng.Shuffle(n, func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })
		sample = sample[:SampleSize]
	}
	sums := make([]int, n)
	for _, s := range sample {
		q := o.Anchor(items[s])
		for j, item := range items {
			sums[j] += q.From(item)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] < sums[order[j]]
	})
	return order
}

// Attributes computes, once, the attributes of the normalized cluster.
func (c *Cluster) Attributes(o distance.Oracle) Attributes {
	if c.state.Has(Attributed) {
		return c.attributes
	}
	c.Normalize(o)
	a, b := c.ratios[0].Left, c.ratios[0].Right
	ma, mb := newMultiset(a), newMultiset(b)
	c.attributes = Attributes{
		Distance:  o.Distance(a, b),
		LeftDiff:  ma.minus(mb).String(),
		RightDiff: mb.minus(ma).String(),
	}
	c.state |= Attributed
	return c.attributes
}

// Clean sorts, normalizes and computes the attributes of the cluster.
func (c *Cluster) Clean(o distance.Oracle, rng *rand.Rand) {
	c.Sort(o, rng)
	c.Normalize(o)
	c.Attributes(o)
}

// Equal reports whether c and other describe the same relation: same
// attributes and every ratio of c distance-consistent with every ratio of
// other. The test is abstract, the words of the clusters may differ.
func (c *Cluster) Equal(o distance.Oracle, other *Cluster) bool {
	if c.Attributes(o) != other.Attributes(o) {
		return false
	}
	for _, r1 := range c.ratios {
		for _, r2 := range other.ratios {
			if !Consistent(o, r1, r2) {
				return false
			}
		}
	}
	return true
}

// Consistent reports whether d(A1, A2) == d(B1, B2).
func Consistent(o distance.Oracle, r1, r2 Ratio) bool {
	return o.Distance(r1.Left, r2.Left) == o.Distance(r1.Right, r2.Right)
}

// AllDistancesCorrect reports whether every pair of ratios satisfies both
// equalities of the distance constraint.
func (c *Cluster) AllDistancesCorrect(o distance.Oracle) bool {
	for i := 0; i < len(c.ratios); i++ {
		for j := i + 1; j < len(c.ratios); j++ {
			ri, rj := c.ratios[i], c.ratios[j]
			if !Consistent(o, ri, rj) || o.Distance(ri.Left, ri.Right) != o.Distance(rj.Left, rj.Right) {
				return false
			}
		}
	}
	return true
}

// NoDuplicateWords reports whether no word repeats among the left members,
// nor among the right members, and no ratio is of the form A : A.
func (c *Cluster) NoDuplicateWords() bool {
	lefts := make(map[string]struct{}, len(c.ratios))
	rights := make(map[string]struct{}, len(c.ratios))
	for _, r := range c.ratios {
		if r.Left == r.Right {
			return false
		}
		if _, ok := lefts[r.Left]; ok {
			return false
		}
		if _, ok := rights[r.Right]; ok {
			return false
		}
		lefts[r.Left] = struct{}{}
		rights[r.Right] = struct{}{}
	}
	return true
}

// DiscardDuplicateWords returns the cluster without the ratios whose left
// member occurs more than once among the left members, or whose right member
// occurs more than once among the right members. ok is false when fewer than
// two ratios remain.
func (c *Cluster) DiscardDuplicateWords() (*Cluster, bool) {
	lefts := make(map[string]int, len(c.ratios))
	rights := make(map[string]int, len(c.ratios))
	for _, r := range c.ratios {
		lefts[r.Left]++
		rights[r.Right]++
	}
	return c.Filter(func(r Ratio) bool {
		return lefts[r.Left] == 1 && rights[r.Right] == 1
	})
}

// Filter returns a new cluster with the ratios for which keep returns true.
// ok is false when fewer than two ratios remain.
func (c *Cluster) Filter(keep func(Ratio) bool) (*Cluster, bool) {
	kept := make([]Ratio, 0, len(c.ratios))
	for _, r := range c.ratios {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) < 2 {
		return nil, false
	}
	return &Cluster{ratios: kept}, true
}

// FilterWords drops the ratios containing one of words, or when discard is
// false keeps only the ratios whose two members are in words.
func (c *Cluster) FilterWords(words map[string]struct{}, discard bool) (*Cluster, bool) {
	return c.Filter(func(r Ratio) bool {
		_, hasLeft := words[r.Left]
		_, hasRight := words[r.Right]
		if discard {
			return !hasLeft && !hasRight
		}
		return hasLeft && hasRight
	})
}

// Contains reports whether word is a member of one of the ratios.
func (c *Cluster) Contains(word string) bool {
	for _, r := range c.ratios {
		if r.Left == word || r.Right == word {
			return true
		}
	}
	return false
}

// Head renders the first n ratios only, n <= 0 renders all.
func (c *Cluster) Head(n int) string {
	if n <= 0 || n > len(c.ratios) {
		n = len(c.ratios)
	}
	return joinRatios(c.ratios[:n])
}

func (c *Cluster) String() string {
	return joinRatios(c.ratios)
}

// multiset is a multiset of runes.
type multiset map[rune]int

func newMultiset(s string) multiset {
	m := make(multiset, len(s))
	for _, r := range s {
		m[r]++
	}
	return m
}

// minus keeps positive counts only.
func (m multiset) minus(other multiset) multiset {
	out := make(multiset)
	for r, n := range m {
		if d := n - other[r]; d > 0 {
			out[r] = d
		}
	}
	return out
}

func (m multiset) String() string {
	runes := make([]rune, 0, len(m))
	for r, n := range m {
		for i := 0; i < n; i++ {
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	var sb strings.Builder
	for _, r := range runes {
		sb.WriteRune(r)
	}
	return sb.String()
}

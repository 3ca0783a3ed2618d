// Package solver solves analogical equations between strings, A : B :: C : x.
//
// Solutions are searched among the shuffles of B and C from which A is
// removed as a subsequence, which is the set of strings D with the same
// character counts as required by A : B :: C : D. Shuffles are explored by
// increasing number of switches between B and C, and only candidates meeting
// the distance constraint are kept.
package solver

import (
	"sort"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/gologger"
)

// Options of a Solver.
type Options struct {
	// MaxSwitches bounds the number of switches between B and C in a shuffle
	MaxSwitches int
	// MaxNodes bounds the number of search steps per switch level
	MaxNodes int
}

// DefaultOptions are used for zero fields.
var DefaultOptions = Options{MaxSwitches: 4, MaxNodes: 1 << 20}

func (o *Options) applyDefaults() {
	if o.MaxSwitches <= 0 {
		o.MaxSwitches = DefaultOptions.MaxSwitches
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultOptions.MaxNodes
	}
}

// Solver solves analogical equations. It is safe for concurrent use when
// its oracle is.
type Solver struct {
	oracle  distance.Oracle
	options Options
}

// New returns a Solver checking candidates with o.
func New(o distance.Oracle, opts Options) *Solver {
	opts.applyDefaults()
	return &Solver{oracle: o, options: opts}
}

// Verify reports whether a : b :: c : d meets the character occurrence and
// the distance constraints.
func (s *Solver) Verify(a, b, c, d string) bool {
	return cluster.CharacterOccurrenceConstraint(a, b, c, d) && cluster.DistanceConstraint(s.oracle, a, b, c, d)
}

// Solve returns x such that a : b :: c : x, and false when there is none.
// The empty string is a valid solution.
//
// Among the candidates of the lowest switch level that has any, the one
// that starts and ends like b or c is preferred, then the smallest in
// lexicographic order.
func (s *Solver) Solve(a, b, c string) (string, bool) {
	switch {
	case a == b:
		return c, true
	case a == c:
		return b, true
	}
	ra, rb, rc := []rune(a), []rune(b), []rune(c)
	if !feasible(ra, rb, rc) {
		return "", false
	}

	for limit := 0; limit <= s.options.MaxSwitches; limit++ {
		sr := &search{a: ra, b: rb, c: rc, limit: limit, budget: s.options.MaxNodes, found: make(map[string]struct{})}
		sr.walk(0, 0, 0, none, 0)
		if sr.exhausted {
			gologger.Debug().Msgf("solve %s : %s :: %s : x: search budget exhausted at %d switches", a, b, c, limit)
		}
		var valid []string
		for d := range sr.found {
			if s.Verify(a, b, c, d) {
				valid = append(valid, d)
			}
		}
		if len(valid) > 0 {
			return best(valid, rb, rc), true
		}
		if sr.exhausted {
			break
		}
	}
	return "", false
}

// feasible checks that b and c hold every character of a, as many times.
func feasible(a, b, c []rune) bool {
	counts := make(map[rune]int)
	for _, r := range b {
		counts[r]++
	}
	for _, r := range c {
		counts[r]++
	}
	for _, r := range a {
		counts[r]--
		if counts[r] < 0 {
			return false
		}
	}
	return true
}

func best(candidates []string, b, c []rune) string {
	score := func(d string) int {
		rd := []rune(d)
		if len(rd) == 0 {
			return 0
		}
		n := 0
		if (len(b) > 0 && rd[0] == b[0]) || (len(c) > 0 && rd[0] == c[0]) {
			n++
		}
		last := rd[len(rd)-1]
		if (len(b) > 0 && last == b[len(b)-1]) || (len(c) > 0 && last == c[len(c)-1]) {
			n++
		}
		return n
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := score(candidates[i]), score(candidates[j])
		if si != sj {
			return si > sj
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0]
}

type source uint8

const (
	none source = iota
	fromB
	fromC
)

// search enumerates the shuffles of b and c with at most limit switches,
// removing a as a subsequence on the way.
type search struct {
	a, b, c   []rune
	limit     int
	budget    int
	nodes     int
	exhausted bool
	out       []rune
	found     map[string]struct{}
}

func (sr *search) walk(i, j, k int, last source, switches int) {
	if sr.nodes >= sr.budget {
		sr.exhausted = true
		return
	}
	sr.nodes++
	if j == len(sr.b) && k == len(sr.c) {
		if i == len(sr.a) {
			sr.found[string(sr.out)] = struct{}{}
		}
		return
	}
	if len(sr.b)-j+len(sr.c)-k < len(sr.a)-i {
		return
	}
	if j < len(sr.b) {
		sr.step(i, j, k, last, switches, fromB, sr.b[j])
	}
	if k < len(sr.c) {
		sr.step(i, j, k, last, switches, fromC, sr.c[k])
	}
}

// step takes r from src, either removing it against a[i] or copying it out.
func (sr *search) step(i, j, k int, last source, switches int, src source, r rune) {
	if last != none && last != src {
		switches++
	}
	if switches > sr.limit {
		return
	}
	nj, nk := j, k
	if src == fromB {
		nj++
	} else {
		nk++
	}
	if i < len(sr.a) && sr.a[i] == r {
		sr.walk(i+1, nj, nk, src, switches)
	}
	sr.out = append(sr.out, r)
	sr.walk(i, nj, nk, src, switches)
	sr.out = sr.out[:len(sr.out)-1]
}

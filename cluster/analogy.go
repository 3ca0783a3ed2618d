package cluster

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/gologger"
)

// Analogy is a proportion A : B :: C : D with its validity flags.
type Analogy struct {
	A, B, C, D string
	// Valid is true when the quadruple satisfies the character occurrence
	// constraint and the distance constraint
	Valid bool
	// Trivial is true for A : A :: B : B and A : B :: A : B
	Trivial bool
}

// NewAnalogy checks a two-ratio cluster against the constraints of analogy.
func NewAnalogy(o distance.Oracle, c *Cluster) (*Analogy, error) {
	if !IsTwoRatios(c) {
		return nil, fmt.Errorf("%w: %d ratios", ErrNotAnalogy, c.Len())
	}
	return AnalogyFromTerms(o, c.ratios[0].Left, c.ratios[0].Right, c.ratios[1].Left, c.ratios[1].Right), nil
}

// AnalogyFromTerms checks A : B :: C : D against the constraints of analogy.
func AnalogyFromTerms(o distance.Oracle, a, b, c, d string) *Analogy {
	return &Analogy{
		A: a, B: b, C: c, D: d,
		Valid:   CharacterOccurrenceConstraint(a, b, c, d) && DistanceConstraint(o, a, b, c, d),
		Trivial: IsTrivial(a, b, c, d),
	}
}

// Cluster returns the analogy as a two-ratio cluster.
func (a *Analogy) Cluster() *Cluster {
	return MustNew(Ratio{Left: a.A, Right: a.B}, Ratio{Left: a.C, Right: a.D})
}

func (a *Analogy) String() string {
	return a.A + RatioSymbol + a.B + Conformity + a.C + RatioSymbol + a.D
}

// IsTwoRatios reports whether c has exactly two ratios.
func IsTwoRatios(c *Cluster) bool {
	return c != nil && c.Len() == 2
}

// CharacterOccurrenceConstraint reports whether |A|c + |D|c == |B|c + |C|c
// for every character c.
func CharacterOccurrenceConstraint(a, b, c, d string) bool {
	counts := make(map[rune]int)
	for _, r := range a {
		counts[r]++
	}
	for _, r := range d {
		counts[r]++
	}
	for _, r := range b {
		counts[r]--
	}
	for _, r := range c {
		counts[r]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

// DistanceConstraint reports whether d(A, B) == d(C, D) and d(A, C) == d(B, D).
func DistanceConstraint(o distance.Oracle, a, b, c, d string) bool {
	return o.Distance(a, b) == o.Distance(c, d) && o.Distance(a, c) == o.Distance(b, d)
}

// IsTrivial reports whether the quadruple is A : A :: B : B or A : B :: A : B.
func IsTrivial(a, b, c, d string) bool {
	return (a == b && c == d) || (a == c && b == d)
}

// FilterAnalogies keeps the valid non-trivial analogies.
func FilterAnalogies(analogies []*Analogy) []*Analogy {
	kept := make([]*Analogy, 0, len(analogies))
	for _, a := range analogies {
		if a.Valid && !a.Trivial {
			kept = append(kept, a)
		}
	}
	return kept
}

// AnalogiesFromCluster enumerates the analogies between every two distinct
// ratios of c and keeps the valid non-trivial ones.
func AnalogiesFromCluster(o distance.Oracle, c *Cluster) []*Analogy {
	seen := make(map[Ratio]struct{}, c.Len())
	ratios := make([]Ratio, 0, c.Len())
	for _, r := range c.ratios {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		ratios = append(ratios, r)
	}
	var analogies []*Analogy
	for i, ab := range ratios {
		for _, cd := range ratios[i+1:] {
			analogies = append(analogies, AnalogyFromTerms(o, ab.Left, ab.Right, cd.Left, cd.Right))
		}
	}
	return FilterAnalogies(analogies)
}

// AnalogiesFromList enumerates the analogies of every cluster.
func AnalogiesFromList(o distance.Oracle, clusters []*Cluster) []*Analogy {
	var analogies []*Analogy
	for _, c := range clusters {
		analogies = append(analogies, AnalogiesFromCluster(o, c)...)
	}
	return analogies
}

// ReadAnalogies reads one analogy A : B :: C : D per line and keeps the valid
// non-trivial ones. Lines that are not analogies are logged and skipped.
func ReadAnalogies(o distance.Oracle, r io.Reader) ([]*Analogy, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var analogies []*Analogy
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, Comment) {
			continue
		}
		c, err := Parse(line)
		if err == nil {
			var a *Analogy
			if a, err = NewAnalogy(o, c); err == nil {
				analogies = append(analogies, a)
				continue
			}
		}
		gologger.Warning().Msgf("line %d: %v", lineNo, err)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return FilterAnalogies(analogies), nil
}

package cluster

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/gologger"
)

// maxLineSize bounds one cluster line, large clusters hold thousands of ratios.
const maxLineSize = 64 * 1024 * 1024

// List is a file of clusters with its indistinguishable words.
type List struct {
	Clusters           []*Cluster
	Indistinguishables Indistinguishables
}

// Reader reads a file of clusters: an optional header of indistinguishable
// words, ended by the first comment line without the duplicate symbol, then
// one cluster per line.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	pending string
	hasNext bool
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: sc}
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) scan() (string, bool) {
	if r.hasNext {
		r.hasNext = false
		return r.pending, true
	}
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}

func (r *Reader) unscan(line string) {
	r.pending, r.hasNext = line, true
}

// ReadIndistinguishables consumes the header. A file without header yields
// an empty mapping and its first line is left for Next.
func (r *Reader) ReadIndistinguishables() (Indistinguishables, error) {
	ind := make(Indistinguishables)
	for {
		line, ok := r.scan()
		if !ok {
			return ind, r.scanner.Err()
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, Comment) {
			r.unscan(line)
			return ind, nil
		}
		if !strings.Contains(line, Duplicate) {
			return ind, nil
		}
		ind.Add(parseIndistinguishable(line))
	}
}

// Next returns the next cluster. Blank and comment lines are skipped. A
// malformed line returns an error wrapping ErrMalformedInput and the reader
// can go on; io.EOF is returned at the end of input.
func (r *Reader) Next() (*Cluster, error) {
	for {
		line, ok := r.scan()
		if !ok {
			if err := r.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, Comment) {
			continue
		}
		c, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return c, nil
	}
}

// ReadList reads a whole file of clusters. Malformed lines are logged and
// skipped, only read errors are returned.
func ReadList(in io.Reader, withIndistinguishables bool) (*List, error) {
	r := NewReader(in)
	list := &List{Indistinguishables: make(Indistinguishables)}
	if withIndistinguishables {
		ind, err := r.ReadIndistinguishables()
		if err != nil {
			return nil, err
		}
		list.Indistinguishables = ind
	}
	for {
		c, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if isMalformed(err) {
				gologger.Warning().Msgf("skipping %v", err)
				continue
			}
			return nil, err
		}
		list.Clusters = append(list.Clusters, c)
	}
	gologger.Verbose().Msgf("read %d clusters and %d classes of indistinguishables", len(list.Clusters), len(list.Indistinguishables))
	return list, nil
}

// Write writes the header of indistinguishables, when there is one, and
// one cluster per line.
func (l *List) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if len(l.Indistinguishables) > 0 {
		if _, err := bw.WriteString(l.Indistinguishables.String()); err != nil {
			return err
		}
	}
	for _, c := range l.Clusters {
		if _, err := bw.WriteString(c.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Len returns the number of clusters.
func (l *List) Len() int {
	return len(l.Clusters)
}

// SortBySize orders clusters by decreasing number of ratios, equal sizes keep
// their order.
func (l *List) SortBySize() {
	SortBySize(l.Clusters)
}

// SortBySize orders clusters by decreasing number of ratios.
func SortBySize(clusters []*Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Len() > clusters[j].Len()
	})
}

// FilterWords applies Cluster.FilterWords to every cluster and drops the
// clusters left with fewer than two ratios.
func (l *List) FilterWords(words map[string]struct{}, discard bool) {
	kept := l.Clusters[:0]
	for _, c := range l.Clusters {
		if f, ok := c.FilterWords(words, discard); ok {
			kept = append(kept, f)
		}
	}
	l.Clusters = kept
}

// DiscardDuplicateWords applies Cluster.DiscardDuplicateWords to every cluster.
func (l *List) DiscardDuplicateWords() {
	kept := l.Clusters[:0]
	for _, c := range l.Clusters {
		if f, ok := c.DiscardDuplicateWords(); ok {
			kept = append(kept, f)
		}
	}
	l.Clusters = kept
}

// Focus keeps the clusters containing word.
func (l *List) Focus(word string) {
	kept := l.Clusters[:0]
	for _, c := range l.Clusters {
		if c.Contains(word) {
			kept = append(kept, c)
		}
	}
	l.Clusters = kept
}

// IntersectionSize counts the pairs of equal clusters between l and other,
// see Cluster.Equal.
func (l *List) IntersectionSize(o distance.Oracle, other *List) int {
	n := 0
	for _, c1 := range l.Clusters {
		for _, c2 := range other.Clusters {
			if c1.Equal(o, c2) {
				n++
			}
		}
	}
	return n
}

// Statistics summarizes a list of clusters.
type Statistics struct {
	// EquivalenceSizes counts classes of indistinguishables per cardinal
	EquivalenceSizes map[int]int
	// ClusterSizes counts clusters per number of ratios
	ClusterSizes map[int]int
	// WithDuplicateWords counts clusters repeating a word
	WithDuplicateWords int
	// WithIncorrectDistances counts clusters breaking the distance constraint
	WithIncorrectDistances int
}

// Statistics computes the size distributions and the number of flawed
// clusters.
func (l *List) Statistics(o distance.Oracle) Statistics {
	st := Statistics{
		EquivalenceSizes: l.Indistinguishables.Sizes(),
		ClusterSizes:     make(map[int]int),
	}
	for _, c := range l.Clusters {
		st.ClusterSizes[c.Len()]++
		if !c.NoDuplicateWords() {
			st.WithDuplicateWords++
		}
		if !c.AllDistancesCorrect(o) {
			st.WithIncorrectDistances++
		}
	}
	return st
}

// Write prints the distributions as commented tab separated columns.
func (st Statistics) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Distribution of equivalent objects")
	fmt.Fprintln(bw, "# Column 1: cardinal")
	fmt.Fprintln(bw, "# \tColumn 2: number of equivalence sets with the same cardinal")
	writeDistribution(bw, st.EquivalenceSizes)
	fmt.Fprintln(bw, "# Distribution of cluster sizes")
	fmt.Fprintln(bw, "# Column 1: size")
	fmt.Fprintln(bw, "# \tColumn 2: number of clusters with that size")
	writeDistribution(bw, st.ClusterSizes)
	fmt.Fprintf(bw, "# Number of cluster with duplicate words:     %d\n", st.WithDuplicateWords)
	fmt.Fprintf(bw, "# Number of cluster with incorrect distances: %d\n", st.WithIncorrectDistances)
	return bw.Flush()
}

func writeDistribution(w io.Writer, dist map[int]int) {
	keys := make([]int, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%d\t%d\n", k, dist[k])
	}
}

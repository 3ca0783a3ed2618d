// Package split enforces the distance constraint on raw analogical clusters.
//
// Clusters produced by grouping feature vectors only guarantee the character
// occurrence constraint. A Splitter decomposes each of them into sub-clusters
// whose ratios are pairwise distance-consistent, in three phases:
//
//   - horizontal: ratios, expanded through their indistinguishable variants,
//     are bucketed by d(A, B)
//   - vertical: each bucket is covered by cliques of its consistency matrix
//   - pruning: ratios repeating a left or right word are dropped
//
// Sub-clusters smaller than the minimal size are discarded at every phase.
package split

import (
	"context"
	"sort"
	"sync"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/gologger"
)

// Options of a Splitter.
type Options struct {
	// MinimalSize is the minimal number of ratios of an output cluster
	MinimalSize int
	// MaximalSize is the maximal number of ratios of an output cluster, 0 for no limit
	MaximalSize int
	// NoHorizontal disables the split by d(A, B)
	NoHorizontal bool
	// NoVertical disables the split by covering cliques
	NoVertical bool
	// NoDiscardDuplicates disables the pruning of repeated words
	NoDiscardDuplicates bool
}

func (o *Options) applyDefaults() {
	if o.MinimalSize < 2 {
		o.MinimalSize = 2
	}
}

// InRange reports whether size is within the size bounds.
func (o *Options) InRange(size int) bool {
	return o.MinimalSize <= size && (o.MaximalSize == 0 || size <= o.MaximalSize)
}

// Splitter splits clusters so that they meet the distance constraint.
// It is safe for concurrent use when its oracle is.
type Splitter struct {
	oracle             distance.Oracle
	indistinguishables cluster.Indistinguishables
	options            Options
}

// NewSplitter returns a Splitter. ind may be nil.
func NewSplitter(o distance.Oracle, ind cluster.Indistinguishables, opts Options) *Splitter {
	opts.applyDefaults()
	return &Splitter{oracle: o, indistinguishables: ind, options: opts}
}

// Split calls yield with every distance-consistent sub-cluster of c whose
// size is within bounds, until yield returns false.
func (s *Splitter) Split(c *cluster.Cluster, yield func(*cluster.Cluster) bool) {
	for _, h := range s.horizontal(c) {
		for _, v := range s.vertical(h) {
			p, ok := s.prune(v)
			if !ok || !s.options.InRange(p.Len()) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// SplitCluster collects the output of Split.
func (s *Splitter) SplitCluster(c *cluster.Cluster) []*cluster.Cluster {
	var out []*cluster.Cluster
	s.Split(c, func(sub *cluster.Cluster) bool {
		out = append(out, sub)
		return true
	})
	return out
}

// SplitAll splits clusters with the given number of workers. The output keeps
// the order of the input clusters.
func (s *Splitter) SplitAll(ctx context.Context, clusters []*cluster.Cluster, workers int) ([]*cluster.Cluster, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([][]*cluster.Cluster, len(clusters))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.SplitCluster(clusters[i])
				gologger.Debug().Msgf("cluster %d (%d ratios) split into %d clusters", i+1, clusters[i].Len(), len(results[i]))
			}
		}()
	}

	var err error
feed:
	for i := range clusters {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}

	var out []*cluster.Cluster
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// horizontal buckets the expanded ratios of c by d(A, B), buckets in order of
// first appearance.
func (s *Splitter) horizontal(c *cluster.Cluster) []*cluster.Cluster {
	if s.options.NoHorizontal {
		return []*cluster.Cluster{c}
	}
	buckets := make(map[int][]cluster.Ratio)
	var keys []int
	for _, r := range c.Ratios() {
		for _, a := range s.all(r.Left) {
			q := s.oracle.Anchor(a)
			for _, b := range s.all(r.Right) {
				d := q.From(b)
				if _, ok := buckets[d]; !ok {
					keys = append(keys, d)
				}
				buckets[d] = append(buckets[d], cluster.Ratio{Left: a, Right: b})
			}
		}
	}
	var out []*cluster.Cluster
	for _, d := range keys {
		if len(buckets[d]) < s.options.MinimalSize {
			continue
		}
		sub, err := cluster.New(buckets[d])
		if err != nil {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func (s *Splitter) all(word string) []string {
	if s.indistinguishables == nil {
		return []string{word}
	}
	return s.indistinguishables.All(word)
}

// vertical keeps the covering cliques of the consistency matrix of c.
func (s *Splitter) vertical(c *cluster.Cluster) []*cluster.Cluster {
	if s.options.NoVertical {
		return []*cluster.Cluster{c}
	}
	m := NewConsistencyMatrix(s.oracle, c)
	var out []*cluster.Cluster
	for _, clique := range m.CoveringCliques(s.options.MinimalSize) {
		sort.Ints(clique)
		ratios := make([]cluster.Ratio, len(clique))
		for k, i := range clique {
			ratios[k] = c.Ratio(i)
		}
		sub, err := cluster.New(ratios)
		if err != nil {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func (s *Splitter) prune(c *cluster.Cluster) (*cluster.Cluster, bool) {
	if s.options.NoDiscardDuplicates {
		return c, true
	}
	pruned, ok := c.DiscardDuplicateWords()
	if !ok || pruned.Len() < s.options.MinimalSize {
		return nil, false
	}
	return pruned, true
}

// Discrepancies counts, for every ratio, the ratios of c it is not
// distance-consistent with.
func Discrepancies(o distance.Oracle, c *cluster.Cluster) map[cluster.Ratio]int {
	result := make(map[cluster.Ratio]int)
	for i := 0; i < c.Len(); i++ {
		ri := c.Ratio(i)
		for j := i + 1; j < c.Len(); j++ {
			rj := c.Ratio(j)
			if !cluster.Consistent(o, ri, rj) {
				result[ri]++
				result[rj]++
			}
		}
	}
	return result
}

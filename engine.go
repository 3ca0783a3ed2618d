package analogx

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/analogx/grid"
	"github.com/projectdiscovery/analogx/internal/vectors"
	"github.com/projectdiscovery/analogx/solver"
	"github.com/projectdiscovery/analogx/split"
	"github.com/projectdiscovery/gologger"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Engine runs the pipeline: clusters are split until they meet the distance
// constraint, then assembled into grids whose holes are predicted.
type Engine struct {
	Options   Options
	oracle    *distance.Memo
	splitter  *split.Splitter
	assembler grid.Assembler
	solver    *solver.Solver
	rng       *rand.Rand
}

// Result of Execute.
type Result struct {
	// Input is the number of clusters read
	Input int
	// Clusters are the split clusters
	Clusters []*cluster.Cluster
	Grids    []*grid.Grid
	Stats    grid.Stats
	Elapsed  time.Duration
}

// New creates an Engine from options.
func New(opts Options) (*Engine, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	oracle, err := distance.New(distance.Options{UseDiskCache: opts.UseDiskCache})
	if err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		Options: opts,
		oracle:  oracle,
		splitter: split.NewSplitter(oracle, nil, split.Options{
			MinimalSize:         opts.MinimalClusterSize,
			MaximalSize:         opts.MaximalClusterSize,
			NoHorizontal:        opts.NoHorizontalSplit,
			NoVertical:          opts.NoVerticalSplit,
			NoDiscardDuplicates: opts.NoDiscardDuplicates,
		}),
		assembler: grid.Assembler{
			Oracle:              oracle,
			SaturationThreshold: opts.SaturationThreshold,
			MinClusterSize:      opts.GridClusterSize,
		},
		solver: solver.New(oracle, solver.Options{}),
		rng:    rand.New(rand.NewSource(seed)),
	}
	return e, nil
}

// Oracle returns the memoized distance oracle shared by every step.
func (e *Engine) Oracle() distance.Oracle {
	return e.oracle
}

// Close releases the distance cache.
func (e *Engine) Close() {
	e.oracle.Close()
}

// ClustersFromWords builds raw clusters from a word list, see
// vectors.FeatureVectors.Clusters.
func (e *Engine) ClustersFromWords(words []string) *cluster.List {
	fv := vectors.New(words)
	return &cluster.List{
		Clusters:           fv.Clusters(e.Options.MinimalClusterSize, e.Options.FocusWord),
		Indistinguishables: fv.Indistinguishables(),
	}
}

// SplitClusters splits the clusters of list so that they meet the distance
// constraint, using the indistinguishables of the list.
func (e *Engine) SplitClusters(ctx context.Context, list *cluster.List) ([]*cluster.Cluster, error) {
	if list == nil || list.Len() == 0 {
		return nil, ErrNoClusters
	}
	clusters := list.Clusters
	if e.Options.FocusWord != "" {
		focused := &cluster.List{Clusters: append([]*cluster.Cluster(nil), clusters...)}
		focused.Focus(e.Options.FocusWord)
		clusters = focused.Clusters
	}
	s := split.NewSplitter(e.oracle, list.Indistinguishables, split.Options{
		MinimalSize:         e.Options.MinimalClusterSize,
		MaximalSize:         e.Options.MaximalClusterSize,
		NoHorizontal:        e.Options.NoHorizontalSplit,
		NoVertical:          e.Options.NoVerticalSplit,
		NoDiscardDuplicates: e.Options.NoDiscardDuplicates,
	})
	if len(list.Indistinguishables) == 0 {
		s = e.splitter
	}
	return s.SplitAll(ctx, clusters, e.Options.Workers)
}

// SplitList splits the clusters of list and keeps its indistinguishables,
// so that the result is written with the same header.
func (e *Engine) SplitList(ctx context.Context, list *cluster.List) (*cluster.List, error) {
	clusters, err := e.SplitClusters(ctx, list)
	if err != nil {
		return nil, err
	}
	return &cluster.List{Clusters: clusters, Indistinguishables: list.Indistinguishables}, nil
}

// BuildGrids assembles clusters into grids, largest clusters first.
func (e *Engine) BuildGrids(ctx context.Context, clusters []*cluster.Cluster) ([]*grid.Grid, grid.Stats, error) {
	if len(clusters) == 0 {
		return nil, grid.Stats{}, ErrNoClusters
	}
	sorted := append([]*cluster.Cluster(nil), clusters...)
	cluster.SortBySize(sorted)
	return e.assembler.Assemble(ctx, sorted)
}

// Predict solves the holes of grids and returns the sorted distinct words.
func (e *Engine) Predict(grids []*grid.Grid) []string {
	var words []string
	for _, g := range grids {
		words = append(words, g.PredictableWords(e.solver)...)
	}
	words = sliceutil.Dedupe(words)
	sort.Strings(words)
	return words
}

// Clean sorts and normalizes every cluster of list in place.
func (e *Engine) Clean(list *cluster.List) {
	for _, c := range list.Clusters {
		c.Clean(e.oracle, e.rng)
	}
}

// Analogies returns the valid non-trivial analogies of the clusters of list.
func (e *Engine) Analogies(list *cluster.List) []*cluster.Analogy {
	return cluster.AnalogiesFromList(e.oracle, list.Clusters)
}

// Execute splits the clusters of list and assembles the result into grids.
func (e *Engine) Execute(ctx context.Context, list *cluster.List) (*Result, error) {
	start := time.Now()
	if list == nil || list.Len() == 0 {
		return nil, ErrNoClusters
	}
	res := &Result{Input: list.Len()}
	clusters, err := e.SplitClusters(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("could not split clusters: %w", err)
	}
	res.Clusters = clusters
	gologger.Verbose().Msgf("%d clusters split into %d clusters", res.Input, len(clusters))
	if len(clusters) == 0 {
		res.Elapsed = time.Since(start)
		return res, nil
	}
	grids, stats, err := e.BuildGrids(ctx, clusters)
	res.Grids, res.Stats = grids, stats
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("could not assemble grids: %w", err)
	}
	return res, nil
}

// Summary renders the report line of the assembly.
func (r *Result) Summary() string {
	return Replace(GridsTemplate, map[string]interface{}{
		"clusters": r.Stats.Inserted,
		"grids":    len(r.Grids),
		"rows":     r.Stats.ByRow,
		"columns":  r.Stats.ByColumn,
		"elapsed":  r.Elapsed.Round(time.Millisecond),
	})
}

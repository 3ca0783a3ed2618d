package grid

import (
	"context"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/gologger"
)

// Assembler packs clusters into grids.
type Assembler struct {
	// Oracle checks the rectangles completed by every placed word
	Oracle distance.Oracle
	// SaturationThreshold is the minimal saturation a grid must keep after an
	// insertion, 0 disables the check
	SaturationThreshold float64
	// MinClusterSize skips clusters with fewer ratios
	MinClusterSize int
}

// Stats of an assembly.
type Stats struct {
	Clusters int
	Inserted int
	Skipped  int
	Grids    int
	ByRow    int
	ByColumn int
}

// Assemble inserts clusters, expected sorted by descending size, into grids.
//
// A grid is opened with the first remaining cluster, then every remaining
// cluster is tried in order and removed when accepted. Passes are repeated
// until one inserts nothing, then the grid is closed and the next one is
// opened. Assembly ends when no cluster is left. The input slice is not
// modified.
//
// The context is checked before every insertion attempt; on cancellation the
// grids built so far are returned with the context error.
func (a Assembler) Assemble(ctx context.Context, clusters []*cluster.Cluster) ([]*Grid, Stats, error) {
	var stats Stats
	remaining := make([]*cluster.Cluster, 0, len(clusters))
	for _, c := range clusters {
		if c.Len() < a.MinClusterSize {
			stats.Skipped++
			continue
		}
		remaining = append(remaining, c)
	}
	stats.Clusters = len(remaining)

	var grids []*Grid
	for len(remaining) > 0 {
		g := New()
		for {
			inserted := 0
			kept := remaining[:0]
			for _, c := range remaining {
				if err := ctx.Err(); err != nil {
					return grids, stats, err
				}
				ok, o := g.CheckAndInsert(a.Oracle, c, a.SaturationThreshold)
				if !ok {
					kept = append(kept, c)
					continue
				}
				inserted++
				stats.Inserted++
				switch o {
				case Row:
					stats.ByRow++
				case Column:
					stats.ByColumn++
				}
			}
			remaining = kept
			if inserted == 0 || len(remaining) == 0 {
				break
			}
		}
		if g.Empty() {
			continue
		}
		grids = append(grids, g)
		stats.Grids++
		gologger.Verbose().Msgf("grid %d closed: %s, %d clusters left", len(grids), g.Attributes(), len(remaining))
	}
	return grids, stats, nil
}

package analogx

import (
	"fmt"
)

// Options of an Engine.
type Options struct {
	// MinimalClusterSize is the minimal number of ratios of an output cluster
	MinimalClusterSize int
	// MaximalClusterSize is the maximal number of ratios of an output
	// cluster, 0 for no limit
	MaximalClusterSize int
	// SaturationThreshold is the minimal saturation of a grid after an
	// insertion, in [0, 1], 0 disables the check
	SaturationThreshold float64
	// FocusWord keeps only the clusters containing it when not empty
	FocusWord string
	// GridClusterSize is the minimal number of ratios of a cluster admitted
	// into a grid
	GridClusterSize int
	// NoHorizontalSplit disables the split of clusters by distance
	NoHorizontalSplit bool
	// NoVerticalSplit disables the split of clusters by covering cliques
	NoVerticalSplit bool
	// NoDiscardDuplicates keeps the ratios repeating a word
	NoDiscardDuplicates bool
	// Workers is the number of clusters split in parallel
	Workers int
	// UseDiskCache stores distances on disk instead of memory
	UseDiskCache bool
	// Seed of the sampling of the median sort, 0 picks one from the clock
	Seed int64
}

// DefaultOptions are the values used for zero fields.
var DefaultOptions = Options{
	MinimalClusterSize: 2,
	GridClusterSize:    3,
	Workers:            1,
}

func (o *Options) applyDefaults() {
	if o.MinimalClusterSize == 0 {
		o.MinimalClusterSize = DefaultOptions.MinimalClusterSize
	}
	if o.GridClusterSize == 0 {
		o.GridClusterSize = DefaultOptions.GridClusterSize
	}
	if o.Workers <= 0 {
		o.Workers = DefaultOptions.Workers
	}
}

func (o *Options) validate() error {
	if o.MinimalClusterSize < 2 {
		return fmt.Errorf("%w: minimal cluster size %d is less than 2", ErrInvalidOptions, o.MinimalClusterSize)
	}
	if o.MaximalClusterSize != 0 && o.MaximalClusterSize < o.MinimalClusterSize {
		return fmt.Errorf("%w: maximal cluster size %d is less than the minimal size %d", ErrInvalidOptions, o.MaximalClusterSize, o.MinimalClusterSize)
	}
	if o.SaturationThreshold < 0 || o.SaturationThreshold > 1 {
		return fmt.Errorf("%w: saturation threshold %v is not in [0, 1]", ErrInvalidOptions, o.SaturationThreshold)
	}
	if o.GridClusterSize < 2 {
		return fmt.Errorf("%w: grid cluster size %d is less than 2", ErrInvalidOptions, o.GridClusterSize)
	}
	return nil
}

package grid

import (
	"fmt"
	"io"
	"math"
	"sort"
)

// Statistics summarize a set of grids.
type Statistics struct {
	Grids int
	// Sizes counts grids by number of cells
	Sizes map[int]int
	// Saturations counts grids by saturation rounded down to a tenth
	Saturations       map[float64]int
	AverageSize       float64
	AverageFilled     float64
	AverageSaturation float64
}

// ComputeStatistics computes the statistics of the attributes of some grids.
func ComputeStatistics(attrs []Attributes) Statistics {
	st := Statistics{
		Grids:       len(attrs),
		Sizes:       make(map[int]int),
		Saturations: make(map[float64]int),
	}
	if len(attrs) == 0 {
		return st
	}
	var size, filled, saturation float64
	for _, a := range attrs {
		st.Sizes[a.Size]++
		st.Saturations[math.Floor(a.Saturation*10)/10]++
		size += float64(a.Size)
		filled += float64(a.Filled)
		saturation += a.Saturation
	}
	n := float64(len(attrs))
	st.AverageSize = size / n
	st.AverageFilled = filled / n
	st.AverageSaturation = saturation / n
	return st
}

// Write writes the statistics as comment lines.
func (st Statistics) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# grids: %d\n# average size: %.2f\n# average filled: %.2f\n# average saturation: %.3f\n",
		st.Grids, st.AverageSize, st.AverageFilled, st.AverageSaturation); err != nil {
		return err
	}
	sizes := make([]int, 0, len(st.Sizes))
	for s := range st.Sizes {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	for _, s := range sizes {
		if _, err := fmt.Fprintf(w, "# size %d: %d\n", s, st.Sizes[s]); err != nil {
			return err
		}
	}
	saturations := make([]float64, 0, len(st.Saturations))
	for s := range st.Saturations {
		saturations = append(saturations, s)
	}
	sort.Float64s(saturations)
	for _, s := range saturations {
		if _, err := fmt.Fprintf(w, "# saturation %.1f: %d\n", s, st.Saturations[s]); err != nil {
			return err
		}
	}
	return nil
}

package grid

import "github.com/projectdiscovery/utils/errkit"

var (
	// ErrMalformedGrid is returned for a grid record whose rows do not have
	// the same number of cells or that repeats a word.
	ErrMalformedGrid = errkit.New("grid: malformed grid")
)

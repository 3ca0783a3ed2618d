package analogx

import "github.com/projectdiscovery/utils/errkit"

var (
	// ErrNoClusters is returned when a pipeline is run on no cluster.
	ErrNoClusters = errkit.New("analogx: no clusters to process")
	// ErrInvalidOptions is returned by New for out of range options.
	ErrInvalidOptions = errkit.New("analogx: invalid options")
)

package cluster

import (
	"errors"

	"github.com/projectdiscovery/utils/errkit"
)

var (
	// ErrInvalidCluster is returned when a cluster has fewer than two ratios
	// or a ratio does not have exactly two members.
	ErrInvalidCluster = errkit.New("cluster: invalid cluster")
	// ErrMalformedInput is returned for a text record that does not parse
	// into ratios.
	ErrMalformedInput = errkit.New("cluster: malformed input")
	// ErrNotAnalogy is returned when an analogy is built from a cluster that
	// does not have exactly two ratios.
	ErrNotAnalogy = errkit.New("cluster: not an analogy")
)

func isMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput) || errors.Is(err, ErrInvalidCluster)
}

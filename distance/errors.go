package distance

import "github.com/projectdiscovery/utils/errkit"

var (
	// ErrOracleUnavailable is returned when the oracle backing store cannot be created
	ErrOracleUnavailable = errkit.New("distance: oracle unavailable")
)

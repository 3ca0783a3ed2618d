package cluster

import (
	"fmt"
	"strings"
)

// Symbols of the textual format shared by cluster, analogy and grid files.
const (
	// RatioSymbol separates the two members of a ratio
	RatioSymbol = " : "
	// Conformity separates the ratios of a cluster
	Conformity = " :: "
	// Comment starts a comment line
	Comment = "#"
	// Duplicate separates indistinguishable words on a comment line
	Duplicate = " == "
	// Hole marks an empty grid cell
	Hole = "_"
)

// ParseRatio parses "A : B".
func ParseRatio(s string) (Ratio, error) {
	parts := strings.Split(s, RatioSymbol)
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("%w: ratio %q has %d members", ErrMalformedInput, strings.TrimSpace(s), len(parts))
	}
	return Ratio{Left: strings.TrimSpace(parts[0]), Right: strings.TrimSpace(parts[1])}, nil
}

// Parse parses one cluster line "A : B :: C : D :: ...".
func Parse(line string) (*Cluster, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("%w: empty line", ErrMalformedInput)
	}
	subs := strings.Split(line, Conformity)
	ratios := make([]Ratio, 0, len(subs))
	for _, sub := range subs {
		r, err := ParseRatio(sub)
		if err != nil {
			return nil, err
		}
		ratios = append(ratios, r)
	}
	return New(ratios)
}

func joinRatios(ratios []Ratio) string {
	var sb strings.Builder
	for i, r := range ratios {
		if i > 0 {
			sb.WriteString(Conformity)
		}
		sb.WriteString(r.Left)
		sb.WriteString(RatioSymbol)
		sb.WriteString(r.Right)
	}
	return sb.String()
}

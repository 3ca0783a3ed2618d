package split

import (
	"sort"
	"strings"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
)

// ConsistencyMatrix is the symmetric adjacency matrix of the consistency
// graph of a cluster: vertices are ratios, and ratios i and j are linked when
// d(Ai, Aj) == d(Bi, Bj). Every ratio is linked to itself.
type ConsistencyMatrix struct {
	n     int
	edges []bool // row-major n*n
}

// NewConsistencyMatrix builds the matrix of c. Each left member is anchored
// once against the following left members, then each right member against
// the following right members.
func NewConsistencyMatrix(o distance.Oracle, c *cluster.Cluster) *ConsistencyMatrix {
	n := c.Len()
	m := &ConsistencyMatrix{n: n, edges: make([]bool, n*n)}
	dists := make([]int, n)
	for i := 0; i < n; i++ {
		m.edges[i*n+i] = true
		ri := c.Ratio(i)
		qa := o.Anchor(ri.Left)
		for j := i + 1; j < n; j++ {
			dists[j] = qa.From(c.Ratio(j).Left)
		}
		qb := o.Anchor(ri.Right)
		for j := i + 1; j < n; j++ {
			if dists[j] == qb.From(c.Ratio(j).Right) {
				m.edges[i*n+j] = true
				m.edges[j*n+i] = true
			}
		}
	}
	return m
}

// NewMatrix builds a matrix from a boolean adjacency table. The diagonal is
// forced to true and only the upper triangle is read.
func NewMatrix(adj [][]bool) *ConsistencyMatrix {
	n := len(adj)
	m := &ConsistencyMatrix{n: n, edges: make([]bool, n*n)}
	for i := 0; i < n; i++ {
		m.edges[i*n+i] = true
		for j := i + 1; j < n && j < len(adj[i]); j++ {
			m.edges[i*n+j] = adj[i][j]
			m.edges[j*n+i] = adj[i][j]
		}
	}
	return m
}

// Dimension returns the number of ratios.
func (m *ConsistencyMatrix) Dimension() int {
	return m.n
}

// Consistent reports whether ratios i and j are linked.
func (m *ConsistencyMatrix) Consistent(i, j int) bool {
	return m.edges[i*m.n+j]
}

// Connections returns the number of ratios linked to i, itself included.
func (m *ConsistencyMatrix) Connections(i int) int {
	count := 0
	for _, e := range m.edges[i*m.n : (i+1)*m.n] {
		if e {
			count++
		}
	}
	return count
}

// Inverted returns the matrix in the historical notation where 0 marks a
// link and 1 its absence.
func (m *ConsistencyMatrix) Inverted() [][]int {
	out := make([][]int, m.n)
	for i := range out {
		out[i] = make([]int, m.n)
		for j := range out[i] {
			if !m.Consistent(i, j) {
				out[i][j] = 1
			}
		}
	}
	return out
}

// String renders the inverted notation, one row per line.
func (m *ConsistencyMatrix) String() string {
	var sb strings.Builder
	for _, row := range m.Inverted() {
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(byte('0' + v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CoveringCliques returns cliques that together try to cover every vertex.
//
// It is a greedy heuristic, not a maximum clique search:
//  1. vertices are ranked by decreasing number of connections, ties by index
//  2. the next uncovered vertex i seeds the clique {i}
//  3. following the ranking, every uncovered vertex linked to all the current
//     members joins the clique and becomes covered
//  4. the clique is returned if it has at least minSize members
//
// Every vertex ends up in at most one returned clique. Members of each clique
// are in ranking order.
func (m *ConsistencyMatrix) CoveringCliques(minSize int) [][]int {
	ranking := make([]int, m.n)
	connections := make([]int, m.n)
	for i := range ranking {
		ranking[i] = i
		connections[i] = m.Connections(i)
	}
	sort.SliceStable(ranking, func(a, b int) bool {
		return connections[ranking[a]] > connections[ranking[b]]
	})

	covered := make([]bool, m.n)
	var cliques [][]int
	for _, seed := range ranking {
		if covered[seed] {
			continue
		}
		clique := []int{seed}
		covered[seed] = true
		for _, v := range ranking {
			if covered[v] || !m.linkedToAll(v, clique) {
				continue
			}
			clique = append(clique, v)
			covered[v] = true
		}
		if len(clique) >= minSize {
			cliques = append(cliques, clique)
		}
	}
	return cliques
}

func (m *ConsistencyMatrix) linkedToAll(v int, clique []int) bool {
	for _, u := range clique {
		if !m.Consistent(v, u) {
			return false
		}
	}
	return true
}

package grid

import (
	"sort"

	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Solver completes analogical equations a : b :: c : x.
type Solver interface {
	Solve(a, b, c string) (string, bool)
}

// Prediction is a word solved for a hole of a grid.
type Prediction struct {
	Cell Cell
	Word string
}

// Predictions solves every hole (i, j) of g from the first triple of filled
// cells (m, k), (i, k), (m, j) with a solution: cell(m,k) : cell(i,k) ::
// cell(m,j) : x. Holes are visited in row-major order. A hole for which no
// triple has a solution, or only the empty word, is left out.
func (g *Grid) Predictions(s Solver) []Prediction {
	var out []Prediction
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if g.cells[i][j].filled {
				continue
			}
			if word, ok := g.solveHole(s, i, j); ok {
				out = append(out, Prediction{Cell: Cell{Row: i, Col: j}, Word: word})
			}
		}
	}
	return out
}

func (g *Grid) solveHole(s Solver, i, j int) (string, bool) {
	for m := 0; m < g.rows; m++ {
		if m == i || !g.cells[m][j].filled {
			continue
		}
		for k := 0; k < g.cols; k++ {
			if k == j || !g.cells[i][k].filled || !g.cells[m][k].filled {
				continue
			}
			if word, ok := s.Solve(g.cells[m][k].word, g.cells[i][k].word, g.cells[m][j].word); ok && word != "" {
				return word, true
			}
		}
	}
	return "", false
}

// PredictableWords returns the sorted distinct words predicted for the holes
// of g.
func (g *Grid) PredictableWords(s Solver) []string {
	var words []string
	for _, p := range g.Predictions(s) {
		words = append(words, p.Word)
	}
	words = sliceutil.Dedupe(words)
	sort.Strings(words)
	return words
}

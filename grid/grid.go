// Package grid builds analogical grids: rectangular tables of words where any
// two rows i, j and any two columns m, n with the four cells filled form an
// analogy cell(i,m) : cell(i,n) :: cell(j,m) : cell(j,n).
//
// Grids grow by inserting clusters that share words with them, one row or one
// column at a time, and never shrink. Cells may be holes; holes are the
// positions of words the grid predicts.
package grid

import (
	"fmt"

	"github.com/projectdiscovery/analogx/distance"
)

// Cell is a coordinate in a grid.
type Cell struct {
	Row int
	Col int
}

// slot is one cell of storage, a hole when filled is false.
type slot struct {
	word   string
	filled bool
}

// Grid is a rectangular table of optional words with an index from every
// placed word to its cell. Storage and index are only modified together,
// through place, so that a word occupies at most one cell.
type Grid struct {
	rows  int
	cols  int
	cells [][]slot
	index map[string]Cell
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{index: make(map[string]Cell)}
}

// FromRows builds a grid from rows of words, an empty string is a hole.
func FromRows(rows [][]string) (*Grid, error) {
	g := New()
	if len(rows) == 0 {
		return g, nil
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformedGrid, i+1, len(row), width)
		}
	}
	for i := 0; i < len(rows); i++ {
		g.expand(false)
	}
	for j := 0; j < width; j++ {
		g.expand(true)
	}
	for i, row := range rows {
		for j, word := range row {
			if word == "" {
				continue
			}
			if at, ok := g.index[word]; ok {
				return nil, fmt.Errorf("%w: %q at (%d, %d) and (%d, %d)", ErrMalformedGrid, word, at.Row, at.Col, i, j)
			}
			g.place(word, Cell{Row: i, Col: j})
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Empty reports whether no word was placed yet.
func (g *Grid) Empty() bool {
	return len(g.index) == 0
}

// At returns the word at (row, col), ok is false for a hole.
func (g *Grid) At(row, col int) (string, bool) {
	s := g.cells[row][col]
	return s.word, s.filled
}

// Lookup returns the cell of word.
func (g *Grid) Lookup(word string) (Cell, bool) {
	c, ok := g.index[word]
	return c, ok
}

// Words returns the number of placed words.
func (g *Grid) Words() int {
	return len(g.index)
}

// RowWords returns the cells of row i, holes as empty strings.
func (g *Grid) RowWords(i int) []string {
	out := make([]string, g.cols)
	for j, s := range g.cells[i] {
		out[j] = s.word
	}
	return out
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: make([][]slot, g.rows),
		index: make(map[string]Cell, len(g.index)),
	}
	for i, row := range g.cells {
		c.cells[i] = append([]slot(nil), row...)
	}
	for w, cell := range g.index {
		c.index[w] = cell
	}
	return c
}

// place stores word at cell and indexes it.
func (g *Grid) place(word string, at Cell) {
	g.cells[at.Row][at.Col] = slot{word: word, filled: true}
	g.index[word] = at
}

func (g *Grid) filled(at Cell) bool {
	return g.cells[at.Row][at.Col].filled
}

// expand adds an empty column when column is true, an empty row otherwise.
func (g *Grid) expand(column bool) {
	if column {
		for i := range g.cells {
			g.cells[i] = append(g.cells[i], slot{})
		}
		g.cols++
		return
	}
	g.cells = append(g.cells, make([]slot, g.cols))
	g.rows++
}

// Attributes describe the shape and fill of a grid.
type Attributes struct {
	Length     int
	Width      int
	Size       int
	Filled     int
	Saturation float64
}

func (a Attributes) String() string {
	return fmt.Sprintf("length=%d width=%d size=%d filled=%d saturation=%.3f", a.Length, a.Width, a.Size, a.Filled, a.Saturation)
}

// Attributes computes the shape and saturation, the ratio of filled cells.
func (g *Grid) Attributes() Attributes {
	a := Attributes{Length: g.rows, Width: g.cols, Size: g.rows * g.cols, Filled: len(g.index)}
	if a.Size > 0 {
		a.Saturation = float64(a.Filled) / float64(a.Size)
	}
	return a
}

// Saturation returns the ratio of filled cells.
func (g *Grid) Saturation() float64 {
	return g.Attributes().Saturation
}

// Verify checks that every fully filled rectangle of the grid satisfies the
// distance constraint and returns the first one that does not.
func (g *Grid) Verify(o distance.Oracle) error {
	for i := 0; i < g.rows; i++ {
		for j := i + 1; j < g.rows; j++ {
			for m := 0; m < g.cols; m++ {
				for n := m + 1; n < g.cols; n++ {
					a, b, c, d := g.cells[i][m], g.cells[i][n], g.cells[j][m], g.cells[j][n]
					if !a.filled || !b.filled || !c.filled || !d.filled {
						continue
					}
					if !holds(o, a.word, b.word, c.word, d.word) {
						return fmt.Errorf("rows %d, %d and columns %d, %d: %s : %s :: %s : %s breaks the distance constraint",
							i, j, m, n, a.word, b.word, c.word, d.word)
					}
				}
			}
		}
	}
	return nil
}

// holds reports whether the rectangle a b / c d satisfies the distance
// constraint along its rows and its columns.
func holds(o distance.Oracle, a, b, c, d string) bool {
	return o.Distance(a, b) == o.Distance(c, d) && o.Distance(a, c) == o.Distance(b, d)
}

// fits reports whether word placed at the empty cell at would only complete
// rectangles satisfying the distance constraint.
func (g *Grid) fits(o distance.Oracle, word string, at Cell) bool {
	row := g.cells[at.Row]
	for n, x := range row {
		if n == at.Col || !x.filled {
			continue
		}
		for m := 0; m < g.rows; m++ {
			if m == at.Row {
				continue
			}
			y, z := g.cells[m][at.Col], g.cells[m][n]
			if !y.filled || !z.filled {
				continue
			}
			if !holds(o, word, x.word, y.word, z.word) {
				return false
			}
		}
	}
	return true
}

func (g *Grid) lineEmpty(column bool, k int) bool {
	if column {
		for i := 0; i < g.rows; i++ {
			if g.cells[i][k].filled {
				return false
			}
		}
		return true
	}
	for _, s := range g.cells[k] {
		if s.filled {
			return false
		}
	}
	return true
}

// dropLine removes column k when column is true, row k otherwise, along with
// its words, and shifts the index of the following lines.
func (g *Grid) dropLine(column bool, k int) {
	for w, at := range g.index {
		switch {
		case column && at.Col == k, !column && at.Row == k:
			delete(g.index, w)
		case column && at.Col > k:
			g.index[w] = Cell{Row: at.Row, Col: at.Col - 1}
		case !column && at.Row > k:
			g.index[w] = Cell{Row: at.Row - 1, Col: at.Col}
		}
	}
	if column {
		for i := range g.cells {
			g.cells[i] = append(g.cells[i][:k], g.cells[i][k+1:]...)
		}
		g.cols--
		return
	}
	g.cells = append(g.cells[:k], g.cells[k+1:]...)
	g.rows--
}

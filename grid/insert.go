package grid

import (
	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/gologger"
)

// Orientation is the way a cluster was laid in a grid.
type Orientation int

const (
	// None means the cluster was not inserted
	None Orientation = iota
	// Row means the left members of the cluster lie on one row and the right
	// members on another, one ratio per column
	Row
	// Column means the left members lie in one column and the right members
	// in another, one ratio per row
	Column
)

func (o Orientation) String() string {
	switch o {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "none"
	}
}

// placement is the outcome of check: the orientation of the cluster and the
// index of the line (row or column) holding each side. A side that does not
// exist yet gets the index of the line expand will add.
type placement struct {
	orientation Orientation
	left        int
	leftExists  bool
	right       int
	rightExists bool
}

// CheckAndInsert inserts c when it shares a line with the grid.
//
// An empty grid is seeded with c: left members in column 0, right members in
// column 1. Otherwise c is admitted if one of its ratios has both members on
// a same line of the grid, or if two of its left (or right) members already
// lie on a same line.
//
// A word is only placed when every fully filled rectangle it completes
// satisfies the distance constraint under o, so the grid always passes
// Verify. Ratios that would break it are skipped and a cluster of which no
// ratio can be placed is not inserted. The insertion is done on a copy, kept
// only when threshold is zero or the saturation of the result is at least
// threshold.
//
// It returns false and None when c is not inserted, which is not an error.
func (g *Grid) CheckAndInsert(o distance.Oracle, c *cluster.Cluster, threshold float64) (bool, Orientation) {
	if g.Empty() {
		g.seed(o, c)
		return true, Column
	}
	p, ok := g.check(c)
	if !ok {
		return false, None
	}
	sim := g.Clone()
	if sim.insert(o, c, p) == 0 {
		gologger.Debug().Msgf("rejected %s: no ratio fits the grid", c.Head(2))
		return false, None
	}
	if s := sim.Saturation(); threshold > 0 && s < threshold {
		gologger.Debug().Msgf("rejected %s: saturation %.3f < %.3f", c.Head(2), s, threshold)
		return false, None
	}
	*g = *sim
	return true, p.orientation
}

func (g *Grid) seed(o distance.Oracle, c *cluster.Cluster) {
	*g = *New()
	g.expand(true)
	g.expand(true)
	for i := 0; i < c.Len(); i++ {
		r := c.Ratio(i)
		_, hasLeft := g.index[r.Left]
		_, hasRight := g.index[r.Right]
		if hasLeft || hasRight || r.Left == r.Right {
			continue
		}
		if !g.addLine(o, false, r.Left, 0, r.Right, 1) {
			gologger.Debug().Msgf("skipped %s: inconsistent with the seeded rows", r)
		}
	}
}

// check scans the ratios of c for the first evidence of a shared line.
func (g *Grid) check(c *cluster.Cluster) (placement, bool) {
	var p placement
	leftRows, leftCols := make(map[int]int), make(map[int]int)
	rightRows, rightCols := make(map[int]int), make(map[int]int)

scan:
	for i := 0; i < c.Len(); i++ {
		r := c.Ratio(i)
		a, hasA := g.index[r.Left]
		b, hasB := g.index[r.Right]
		switch {
		case hasA && hasB:
			if a == b {
				continue
			}
			if a.Col == b.Col {
				// A above B: sides are rows
				p = placement{orientation: Row, left: a.Row, leftExists: true, right: b.Row, rightExists: true}
				break scan
			}
			if a.Row == b.Row {
				p = placement{orientation: Column, left: a.Col, leftExists: true, right: b.Col, rightExists: true}
				break scan
			}
		case hasA:
			leftCols[a.Col]++
			leftRows[a.Row]++
			if leftCols[a.Col] > 1 {
				p = placement{orientation: Column, left: a.Col, leftExists: true}
				break scan
			}
			if leftRows[a.Row] > 1 {
				p = placement{orientation: Row, left: a.Row, leftExists: true}
				break scan
			}
		case hasB:
			rightCols[b.Col]++
			rightRows[b.Row]++
			if rightCols[b.Col] > 1 {
				p = placement{orientation: Column, right: b.Col, rightExists: true}
				break scan
			}
			if rightRows[b.Row] > 1 {
				p = placement{orientation: Row, right: b.Row, rightExists: true}
				break scan
			}
		}
	}

	if !p.leftExists && !p.rightExists {
		return p, false
	}
	next := g.cols
	if p.orientation == Row {
		next = g.rows
	}
	if !p.leftExists {
		p.left = next
	}
	if !p.rightExists {
		p.right = next
	}
	return p, true
}

// insert lays the ratios of c along the lines found by check and returns the
// number of words placed. A ratio whose anchor side is placed on the expected
// line gets its other member on the same column (Row) or row (Column); a
// ratio whose anchor is new is glued on a fresh line. Ratios that would move
// a placed word, overwrite a cell or break a rectangle are skipped. The side
// line added for c is removed again when it stays empty.
func (g *Grid) insert(o distance.Oracle, c *cluster.Cluster, p placement) int {
	column := p.orientation == Column
	side := -1
	if !p.leftExists || !p.rightExists {
		g.expand(column)
		side = p.left
		if !p.rightExists {
			side = p.right
		}
	}
	placed := 0
	anchorLeft := p.leftExists
	for i := 0; i < c.Len(); i++ {
		r := c.Ratio(i)
		anchor, other := r.Left, r.Right
		anchorLine, otherLine := p.left, p.right
		if !anchorLeft {
			anchor, other = r.Right, r.Left
			anchorLine, otherLine = p.right, p.left
		}
		if anchor == other {
			continue
		}
		at, ok := g.index[anchor]
		if !ok {
			if _, ok := g.index[other]; ok {
				continue
			}
			// a fresh row for Column, a fresh column for Row
			if g.addLine(o, !column, anchor, anchorLine, other, otherLine) {
				placed += 2
			} else {
				gologger.Debug().Msgf("skipped %s: inconsistent with the grid", r)
			}
			continue
		}
		var target Cell
		if p.orientation == Row {
			if at.Row != anchorLine {
				continue
			}
			target = Cell{Row: otherLine, Col: at.Col}
		} else {
			if at.Col != anchorLine {
				continue
			}
			target = Cell{Row: at.Row, Col: otherLine}
		}
		if cur, ok := g.index[other]; ok || g.filled(target) {
			if !ok || cur != target {
				gologger.Debug().Msgf("skipped %s: %q cannot be placed at (%d, %d)", r, other, target.Row, target.Col)
			}
			continue
		}
		if !g.fits(o, other, target) {
			gologger.Debug().Msgf("skipped %s: inconsistent with the grid", r)
			continue
		}
		g.place(other, target)
		placed++
	}
	if side >= 0 && g.lineEmpty(column, side) {
		g.dropLine(column, side)
	}
	return placed
}

// addLine appends a row, or a column when column is true, holding first at
// position i and second at position j of the new line. The line is removed
// and false returned when second does not fit.
func (g *Grid) addLine(o distance.Oracle, column bool, first string, i int, second string, j int) bool {
	g.expand(column)
	at1, at2 := Cell{Row: g.rows - 1, Col: i}, Cell{Row: g.rows - 1, Col: j}
	last := g.rows - 1
	if column {
		at1, at2 = Cell{Row: i, Col: g.cols - 1}, Cell{Row: j, Col: g.cols - 1}
		last = g.cols - 1
	}
	g.place(first, at1)
	if !g.fits(o, second, at2) {
		g.dropLine(column, last)
		return false
	}
	g.place(second, at2)
	return true
}

package grid

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/analogx/distance"
	"github.com/stretchr/testify/require"
)

var lcs distance.LCS

func mustParse(t *testing.T, line string) *cluster.Cluster {
	t.Helper()
	c, err := cluster.Parse(line)
	require.NoError(t, err)
	return c
}

var insertions = []struct {
	line        string
	orientation Orientation
	rows, cols  int
}{
	{"minum : diminum :: makan : dimakan :: beli : dibeli", Column, 3, 2},
	{"minum : minuman :: makan : makanan", Column, 3, 3},
	{"minum : makan :: minuman : makanan :: meminum : memakan :: diminum : dimakan", Row, 3, 4},
	{"main : mainan :: minum : minuman :: makan : makanan", Column, 4, 4},
	{"minum : minumlah :: makan : makanlah :: beli : belilah", Column, 4, 5},
}

const built = `minum : diminum : minuman : meminum : minumlah
makan : dimakan : makanan : memakan : makanlah
beli : dibeli : _ : _ : belilah
main : _ : mainan : _ : _`

func buildGrid(t *testing.T) *Grid {
	t.Helper()
	g := New()
	for _, ins := range insertions {
		ok, o := g.CheckAndInsert(lcs, mustParse(t, ins.line), 0)
		require.True(t, ok, ins.line)
		require.Equal(t, ins.orientation, o, ins.line)
		require.Equal(t, ins.rows, g.Rows(), ins.line)
		require.Equal(t, ins.cols, g.Cols(), ins.line)
		require.NoError(t, g.Verify(lcs), ins.line)
	}
	return g
}

func TestSeed(t *testing.T) {
	g := New()
	require.True(t, g.Empty())
	ok, o := g.CheckAndInsert(lcs, mustParse(t, "minum : diminum :: makan : dimakan :: beli : dibeli"), 0.9)
	require.True(t, ok)
	require.Equal(t, Column, o)
	require.Equal(t, "column", o.String())
	require.Equal(t, 3, g.Rows())
	require.Equal(t, 2, g.Cols())

	cell, ok := g.Lookup("dimakan")
	require.True(t, ok)
	require.Equal(t, Cell{Row: 1, Col: 1}, cell)
	require.Equal(t, []string{"beli", "dibeli"}, g.RowWords(2))
}

func TestCheckAndInsert(t *testing.T) {
	g := buildGrid(t)
	require.Equal(t, built, g.String())
	require.Equal(t, 15, g.Words())
	require.Equal(t, Attributes{Length: 4, Width: 5, Size: 20, Filled: 15, Saturation: 0.75}, g.Attributes())

	for word, cell := range g.index {
		w, ok := g.At(cell.Row, cell.Col)
		require.True(t, ok)
		require.Equal(t, word, w)
	}
	_, ok := g.At(3, 1)
	require.False(t, ok)
}

func TestCheckAndInsertRejects(t *testing.T) {
	g := buildGrid(t)
	before := g.String()
	ok, o := g.CheckAndInsert(lcs, mustParse(t, "x : xy :: z : zy"), 0)
	require.False(t, ok)
	require.Equal(t, None, o)
	require.Equal(t, "none", o.String())
	require.Equal(t, before, g.String())
}

func TestCheckAndInsertKeepsRectanglesConsistent(t *testing.T) {
	g := New()
	ok, _ := g.CheckAndInsert(lcs, mustParse(t, "bcba : bcbac :: x : xc"), 0)
	require.True(t, ok)

	// cb : ccb fits x : xc but not bcba : bcbac, d(bcba,cb)=2 and d(bcbac,ccb)=4
	ok, o := g.CheckAndInsert(lcs, mustParse(t, "x : xc :: cb : ccb"), 0)
	require.False(t, ok)
	require.Equal(t, None, o)
	require.Equal(t, "bcba : bcbac\nx : xc", g.String())

	ok, o = g.CheckAndInsert(lcs, mustParse(t, "x : xc :: cb : ccb :: bcb : bcbc"), 0)
	require.True(t, ok)
	require.Equal(t, Column, o)
	require.Equal(t, "bcba : bcbac\nx : xc\nbcb : bcbc", g.String())
	_, placed := g.Lookup("cb")
	require.False(t, placed)
	require.NoError(t, g.Verify(lcs))
}

func TestAssembleVerifies(t *testing.T) {
	clusters := []*cluster.Cluster{
		mustParse(t, "bcba : bcbac :: x : xc"),
		mustParse(t, "x : xc :: cb : ccb"),
	}
	grids, stats, err := Assembler{Oracle: lcs, MinClusterSize: 2}.Assemble(context.Background(), clusters)
	require.NoError(t, err)
	require.Equal(t, Stats{Clusters: 2, Inserted: 2, Grids: 2, ByColumn: 2}, stats)
	require.Equal(t, "bcba : bcbac\nx : xc", grids[0].String())
	require.Equal(t, "x : xc\ncb : ccb", grids[1].String())
	for _, g := range grids {
		require.NoError(t, g.Verify(lcs))
	}
}

func TestSaturationThreshold(t *testing.T) {
	g := New()
	for _, ins := range insertions[:3] {
		ok, _ := g.CheckAndInsert(lcs, mustParse(t, ins.line), 0)
		require.True(t, ok)
	}
	require.Equal(t, 3, g.Rows())
	require.Equal(t, 4, g.Cols())

	// inserting main : mainan leaves 12 of 16 cells filled
	c := mustParse(t, insertions[3].line)
	ok, o := g.CheckAndInsert(lcs, c, 0.8)
	require.False(t, ok)
	require.Equal(t, None, o)
	require.Equal(t, 3, g.Rows())
	_, placed := g.Lookup("main")
	require.False(t, placed)

	ok, o = g.CheckAndInsert(lcs, c, 0.7)
	require.True(t, ok)
	require.Equal(t, Column, o)
	require.Equal(t, 4, g.Rows())
	require.InDelta(t, 0.75, g.Saturation(), 1e-9)
}

func TestClone(t *testing.T) {
	g := buildGrid(t)
	c := g.Clone()
	c.expand(false)
	c.place("tulis", Cell{Row: 4, Col: 0})
	require.Equal(t, 4, g.Rows())
	_, ok := g.Lookup("tulis")
	require.False(t, ok)
	require.Equal(t, built, g.String())
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]string{{"a", "ab"}, {"c", ""}})
	require.NoError(t, err)
	require.Equal(t, "a : ab\nc : _", g.String())
	require.Equal(t, 3, g.Words())

	_, err = FromRows([][]string{{"a", "ab"}, {"c"}})
	require.ErrorIs(t, err, ErrMalformedGrid)

	_, err = FromRows([][]string{{"a", "ab"}, {"ab", "c"}})
	require.ErrorIs(t, err, ErrMalformedGrid)
}

func TestVerify(t *testing.T) {
	g, err := FromRows([][]string{{"a", "aa"}, {"aaa", "aaaa"}})
	require.NoError(t, err)
	require.NoError(t, g.Verify(lcs))

	g, err = FromRows([][]string{{"anything", "bad"}, {"invalid", "wrong"}})
	require.NoError(t, err)
	require.Error(t, g.Verify(lcs))
}

func TestCodec(t *testing.T) {
	g := buildGrid(t)
	other, err := FromRows([][]string{{"a", "ab"}, {"c", "cb"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*Grid{g, other}))
	require.Equal(t, built+"\n\na : ab\nc : cb\n", buf.String())

	grids, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, grids, 2)
	require.Equal(t, built, grids[0].String())
	require.Equal(t, "a : ab\nc : cb", grids[1].String())
}

func TestReadSkipsMalformed(t *testing.T) {
	in := "a : ab\nc\n\n# comment\nx : xy\nz : zy\n"
	grids, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, grids, 1)
	require.Equal(t, "x : xy\nz : zy", grids[0].String())
}

func TestPrettyPrint(t *testing.T) {
	g := buildGrid(t)
	var buf bytes.Buffer
	require.NoError(t, PrettyPrint(&buf, []*Grid{g}))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "# Grid no.: 1 - length=4 width=5 size=20 filled=15 saturation=0.750\n"), out)

	grids, err := Read(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, grids, 1)
	require.Equal(t, built, grids[0].String())
}

// affixSolver transfers a prefix or suffix: minum : main :: diminum : dimain.
type affixSolver struct{}

func (affixSolver) Solve(a, b, c string) (string, bool) {
	switch {
	case strings.HasPrefix(c, a):
		return b + c[len(a):], true
	case strings.HasSuffix(c, a):
		return c[:len(c)-len(a)] + b, true
	}
	return "", false
}

func TestPredictions(t *testing.T) {
	g := buildGrid(t)
	require.Equal(t, []Prediction{
		{Cell: Cell{Row: 2, Col: 2}, Word: "belian"},
		{Cell: Cell{Row: 2, Col: 3}, Word: "mebeli"},
		{Cell: Cell{Row: 3, Col: 1}, Word: "dimain"},
		{Cell: Cell{Row: 3, Col: 3}, Word: "memain"},
		{Cell: Cell{Row: 3, Col: 4}, Word: "mainlah"},
	}, g.Predictions(affixSolver{}))
	require.Equal(t, []string{"belian", "dimain", "mainlah", "mebeli", "memain"}, g.PredictableWords(affixSolver{}))
}

func TestAssemble(t *testing.T) {
	var clusters []*cluster.Cluster
	for _, ins := range insertions {
		clusters = append(clusters, mustParse(t, ins.line))
	}
	clusters = append(clusters, mustParse(t, "x : xy :: z : zy"))

	grids, stats, err := Assembler{Oracle: lcs, MinClusterSize: 2}.Assemble(context.Background(), clusters)
	require.NoError(t, err)
	require.Len(t, grids, 2)
	require.Equal(t, built, grids[0].String())
	require.Equal(t, "x : xy\nz : zy", grids[1].String())
	require.Equal(t, Stats{Clusters: 6, Inserted: 6, Grids: 2, ByRow: 1, ByColumn: 5}, stats)
	require.Len(t, clusters, 6, "input is not modified")

	grids, stats, err = Assembler{Oracle: lcs, MinClusterSize: 3}.Assemble(context.Background(), clusters)
	require.NoError(t, err)
	require.Len(t, grids, 1)
	require.Equal(t, 2, stats.Skipped)
	require.NoError(t, grids[0].Verify(lcs))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	grids, _, err = Assembler{Oracle: lcs}.Assemble(ctx, clusters)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, grids)
}

func TestStatistics(t *testing.T) {
	st := ComputeStatistics([]Attributes{
		{Length: 2, Width: 2, Size: 4, Filled: 4, Saturation: 1},
		{Length: 4, Width: 5, Size: 20, Filled: 15, Saturation: 0.75},
	})
	require.Equal(t, 2, st.Grids)
	require.Equal(t, map[int]int{4: 1, 20: 1}, st.Sizes)
	require.Equal(t, map[float64]int{1: 1, 0.7: 1}, st.Saturations)
	require.InDelta(t, 12.0, st.AverageSize, 1e-9)
	require.InDelta(t, 0.875, st.AverageSaturation, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, st.Write(&buf))
	require.Contains(t, buf.String(), "# grids: 2\n")
	require.Contains(t, buf.String(), "# saturation 0.7: 1\n")
}

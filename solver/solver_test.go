package solver

import (
	"testing"

	"github.com/projectdiscovery/analogx/distance"
	"github.com/projectdiscovery/analogx/grid"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	s := New(distance.LCS{}, Options{})
	tests := []struct {
		a, b, c  string
		expected string
		ok       bool
	}{
		{"minum", "diminum", "makan", "dimakan", true},
		{"minum", "makan", "diminum", "dimakan", true},
		{"walk", "walked", "jump", "jumped", true},
		{"a", "aa", "aaa", "aaaa", true},
		{"minum", "beli", "minuman", "belian", true},
		{"aaa", "aa", "a", "", true},
		{"x", "x", "y", "y", true},
		{"x", "y", "x", "y", true},
		{"aaac", "aa", "a", "", false},
		{"ab", "ba", "cd", "", false},
	}
	for _, tt := range tests {
		got, ok := s.Solve(tt.a, tt.b, tt.c)
		require.Equal(t, tt.ok, ok, "%s : %s :: %s", tt.a, tt.b, tt.c)
		require.Equal(t, tt.expected, got, "%s : %s :: %s", tt.a, tt.b, tt.c)
		if ok {
			require.True(t, s.Verify(tt.a, tt.b, tt.c, got))
		}
	}
}

func TestVerify(t *testing.T) {
	s := New(distance.LCS{}, Options{})
	require.True(t, s.Verify("a", "aa", "aaa", "aaaa"))
	require.True(t, s.Verify("minum", "diminum", "makan", "dimakan"))
	require.False(t, s.Verify("anything", "bad", "invalid", "wrong"))
	require.False(t, s.Verify("walk", "walked", "jump", "jumpde"))
}

func TestBudget(t *testing.T) {
	s := New(distance.LCS{}, Options{MaxNodes: 3})
	_, ok := s.Solve("minum", "diminum", "makan")
	require.False(t, ok)
}

func TestPredictGrid(t *testing.T) {
	g, err := grid.FromRows([][]string{{"minum", "diminum"}, {"makan", ""}})
	require.NoError(t, err)
	s := New(distance.LCS{}, Options{})
	require.Equal(t, []grid.Prediction{{Cell: grid.Cell{Row: 1, Col: 1}, Word: "dimakan"}}, g.Predictions(s))
	require.Equal(t, []string{"dimakan"}, g.PredictableWords(s))
}

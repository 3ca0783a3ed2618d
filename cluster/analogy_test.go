package cluster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalogy(t *testing.T) {
	tests := []struct {
		line       string
		occurrence bool
		distance   bool
		valid      bool
	}{
		{"a : aa :: aaa : aaaa", true, true, true},
		{"aslama : arsala :: muslim : mursil", true, true, true},
		{"anything : bad :: invalid : wrong", false, false, false},
		{"toto : popo :: tata : apap", true, true, true},
		{"toto : popo :: tata : apapa", false, false, false},
		{"abc : abd :: efg : efh", false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			a, err := NewAnalogy(lcs, mustParse(t, tt.line))
			require.NoError(t, err)
			require.Equal(t, tt.occurrence, CharacterOccurrenceConstraint(a.A, a.B, a.C, a.D))
			require.Equal(t, tt.distance, DistanceConstraint(lcs, a.A, a.B, a.C, a.D))
			require.Equal(t, tt.valid, a.Valid)
			require.False(t, a.Trivial)
			require.Equal(t, tt.line, a.String())
		})
	}
}

func TestTrivialAnalogy(t *testing.T) {
	require.True(t, IsTrivial("a", "a", "b", "b"))
	require.True(t, IsTrivial("a", "b", "a", "b"))
	require.False(t, IsTrivial("a", "b", "b", "a"))

	a := AnalogyFromTerms(lcs, "ab", "ab", "cd", "cd")
	require.True(t, a.Valid)
	require.True(t, a.Trivial)
	require.Empty(t, FilterAnalogies([]*Analogy{a}))
}

func TestNotAnalogy(t *testing.T) {
	_, err := NewAnalogy(lcs, mustParse(t, "a : b :: c : d :: e : f"))
	require.ErrorIs(t, err, ErrNotAnalogy)
	require.True(t, IsTwoRatios(mustParse(t, "a : b :: c : d")))
}

func TestAnalogiesFromCluster(t *testing.T) {
	c := mustParse(t, "minum : diminum :: makan : dimakan :: beli : dibeli :: makan : dimakan")
	analogies := AnalogiesFromCluster(lcs, c)
	require.Len(t, analogies, 3)
	for _, a := range analogies {
		require.True(t, a.Valid)
		require.False(t, a.Trivial)
		require.Equal(t, 2, a.Cluster().Len())
	}
	require.Equal(t, "minum : diminum :: makan : dimakan", analogies[0].String())

	all := AnalogiesFromList(lcs, []*Cluster{c, mustParse(t, "a : aa :: aaa : aaaa")})
	require.Len(t, all, 4)
}

func TestReadAnalogies(t *testing.T) {
	input := strings.Join([]string{
		"a : aa :: aaa : aaaa",
		"abc : abd :: efg : efh",
		"# comment",
		"",
		"x : y",
		"b : bb :: bbb : bbbb",
		"a : b :: c : d :: e : f",
	}, "\n")
	analogies, err := ReadAnalogies(lcs, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, analogies, 2)
	require.Equal(t, "a : aa :: aaa : aaaa", analogies[0].String())
	require.Equal(t, "b : bb :: bbb : bbbb", analogies[1].String())
}

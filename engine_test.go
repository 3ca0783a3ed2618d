package analogx

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/stretchr/testify/require"
)

func parseList(t *testing.T, lines ...string) *cluster.List {
	t.Helper()
	list, err := cluster.ReadList(strings.NewReader(strings.Join(lines, "\n")), false)
	require.NoError(t, err)
	return list
}

const (
	mixed  = "minum : diminum :: makan : dimakan :: beli : dibeli :: minum : minuman :: makan : makanan"
	mainan = "main : mainan :: minum : minuman :: makan : makanan"
)

func TestNewValidatesOptions(t *testing.T) {
	for _, opts := range []Options{
		{MinimalClusterSize: 1},
		{MinimalClusterSize: 3, MaximalClusterSize: 2},
		{SaturationThreshold: 1.5},
		{SaturationThreshold: -0.1},
		{GridClusterSize: 1},
	} {
		_, err := New(opts)
		require.ErrorIs(t, err, ErrInvalidOptions, "%+v", opts)
	}

	e, err := New(Options{})
	require.NoError(t, err)
	defer e.Close()
	require.Equal(t, 2, e.Options.MinimalClusterSize)
	require.Equal(t, 3, e.Options.GridClusterSize)
	require.Equal(t, 1, e.Options.Workers)
}

func TestExecute(t *testing.T) {
	e, err := New(Options{GridClusterSize: 2, Seed: 1})
	require.NoError(t, err)
	defer e.Close()

	res, err := e.Execute(context.Background(), parseList(t, mixed, mainan))
	require.NoError(t, err)
	require.Equal(t, 2, res.Input)
	require.Len(t, res.Clusters, 3)
	require.Len(t, res.Grids, 1)
	require.Equal(t, "minum : diminum : minuman\nmakan : dimakan : makanan\nbeli : dibeli : _\nmain : _ : mainan", res.Grids[0].String())
	require.NoError(t, res.Grids[0].Verify(e.Oracle()))
	require.Equal(t, 3, res.Stats.Inserted)
	require.Equal(t, 3, res.Stats.ByColumn)
	require.True(t, strings.HasPrefix(res.Summary(), "3 clusters assembled into 1 grids (0 by row, 3 by column) in "), res.Summary())

	require.Equal(t, []string{"belian", "dimain"}, e.Predict(res.Grids))
}

func TestExecuteNoClusters(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Execute(context.Background(), &cluster.List{})
	require.ErrorIs(t, err, ErrNoClusters)
	_, _, err = e.BuildGrids(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoClusters)
}

func TestExecuteCanceled(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Execute(ctx, parseList(t, mixed))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSplitListKeepsHeader(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)
	defer e.Close()

	list, err := ReadClusters(strings.NewReader(withHeader))
	require.NoError(t, err)
	out, err := e.SplitList(context.Background(), list)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, out.Write(&buf))
	require.Equal(t, "# ab == ba\n# \nab : abx :: cd : cdx\n", buf.String())

	e.Clean(list)
	buf.Reset()
	require.NoError(t, list.Write(&buf))
	require.True(t, strings.HasPrefix(buf.String(), "# ab == ba\n# \n"), buf.String())
}

func randomWords(rng *rand.Rand, n int) []string {
	words := make([]string, n)
	for i := range words {
		b := make([]byte, 1+rng.Intn(5))
		for j := range b {
			b[j] = "abc"[rng.Intn(3)]
		}
		words[i] = string(b)
	}
	return words
}

func TestExecuteGridsVerify(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		e, err := New(Options{GridClusterSize: 2, Seed: seed})
		require.NoError(t, err)

		words := randomWords(rand.New(rand.NewSource(seed)), 40)
		res, err := e.Execute(context.Background(), e.ClustersFromWords(words))
		if errors.Is(err, ErrNoClusters) {
			e.Close()
			continue
		}
		require.NoError(t, err, "seed %d", seed)
		for _, g := range res.Grids {
			require.NoError(t, g.Verify(e.Oracle()), "seed %d\n%s", seed, g)
		}
		e.Close()
	}
}

func TestFocus(t *testing.T) {
	e, err := New(Options{FocusWord: "main"})
	require.NoError(t, err)
	defer e.Close()

	clusters, err := e.SplitClusters(context.Background(), parseList(t, mixed, mainan))
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	require.Equal(t, mainan, clusters[0].String())
}

func TestClustersFromWords(t *testing.T) {
	e, err := New(Options{})
	require.NoError(t, err)
	defer e.Close()

	list := e.ClustersFromWords([]string{"minum", "diminum", "makan", "dimakan", "beli", "dibeli", "listen", "silent"})
	require.NotEmpty(t, list.Clusters)
	require.Equal(t, "beli : dibeli :: makan : dimakan :: minum : diminum", list.Clusters[0].String())
	require.Equal(t, []string{"listen", "silent"}, list.Indistinguishables.All("listen"))

	clusters, err := e.SplitClusters(context.Background(), list)
	require.NoError(t, err)
	for _, c := range clusters {
		require.True(t, c.AllDistancesCorrect(e.Oracle()), c.String())
	}
}

func TestCleanAndAnalogies(t *testing.T) {
	e, err := New(Options{Seed: 1})
	require.NoError(t, err)
	defer e.Close()

	list := parseList(t, "aaa : aaaa :: a : aa", "anything : bad :: invalid : wrong")
	e.Clean(list)
	for _, c := range list.Clusters {
		require.True(t, c.State().Has(cluster.Normalized|cluster.Sorted|cluster.Attributed))
	}
	analogies := e.Analogies(list)
	require.Len(t, analogies, 1)
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, GenerateSample(path))
	cfg, err := NewConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig, *cfg)

	cfg.SaturationThreshold = 0.5
	cfg.Focus = "makan"
	opts := Options{MinimalClusterSize: 4}
	cfg.Apply(&opts)
	require.Equal(t, 4, opts.MinimalClusterSize)
	require.Equal(t, 3, opts.GridClusterSize)
	require.Equal(t, 0.5, opts.SaturationThreshold)
	require.Equal(t, "makan", opts.FocusWord)
}

func TestReplace(t *testing.T) {
	require.Equal(t, "read 3 clusters in clusters.txt", Replace(ReadTemplate, map[string]interface{}{"clusters": 3, "file": "clusters.txt"}))
}

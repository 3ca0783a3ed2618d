package cluster

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const clusterFile = `# a == b
# c == e == d
#
a : aa :: b : bb
bad line
c : cc :: d : dd :: e : ee
# trailing comment
`

func TestReadList(t *testing.T) {
	list, err := ReadList(strings.NewReader(clusterFile), true)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())
	require.Equal(t, Indistinguishables{
		"a": {"a", "b"},
		"c": {"c", "d", "e"},
	}, list.Indistinguishables)
	require.Equal(t, []string{"c", "d", "e"}, list.Indistinguishables.All("c"))
	require.Equal(t, []string{"d"}, list.Indistinguishables.All("d"))

	var buf bytes.Buffer
	require.NoError(t, list.Write(&buf))
	require.Equal(t, "# a == b\n# c == d == e\n# \na : aa :: b : bb\nc : cc :: d : dd :: e : ee\n", buf.String())

	again, err := ReadList(&buf, true)
	require.NoError(t, err)
	require.Equal(t, list.Indistinguishables, again.Indistinguishables)
	require.Equal(t, list.Clusters[1].Ratios(), again.Clusters[1].Ratios())
}

func TestReaderWithoutHeader(t *testing.T) {
	r := NewReader(strings.NewReader("a : aa :: b : bb\nx : y\nc : cc :: d : dd\n"))
	ind, err := r.ReadIndistinguishables()
	require.NoError(t, err)
	require.Empty(t, ind)

	c, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "a : aa :: b : bb", c.String())

	_, err = r.Next()
	require.ErrorIs(t, err, ErrInvalidCluster)
	require.Equal(t, 2, r.Line())

	c, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, "c : cc :: d : dd", c.String())

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestListOperations(t *testing.T) {
	list := &List{Clusters: []*Cluster{
		mustParse(t, "a : aa :: b : bb"),
		mustParse(t, "minum : diminum :: makan : dimakan :: beli : dibeli"),
		mustParse(t, "x : xa :: x : xb :: y : ya"),
	}}

	list.SortBySize()
	require.Equal(t, 3, list.Clusters[0].Len())
	require.Equal(t, "minum : diminum :: makan : dimakan :: beli : dibeli", list.Clusters[0].String())

	st := list.Statistics(lcs)
	require.Equal(t, map[int]int{2: 1, 3: 2}, st.ClusterSizes)
	require.Equal(t, 1, st.WithDuplicateWords)

	var buf bytes.Buffer
	require.NoError(t, st.Write(&buf))
	require.Contains(t, buf.String(), "2\t1\n3\t2\n")
	require.Contains(t, buf.String(), "# Number of cluster with duplicate words:     1\n")

	other := &List{Clusters: []*Cluster{mustParse(t, "c : cc :: d : dd")}}
	require.Equal(t, 0, list.IntersectionSize(lcs, other))
	require.Equal(t, 1, list.IntersectionSize(lcs, &List{Clusters: []*Cluster{mustParse(t, "tulis : ditulis :: baca : dibaca")}}))

	list.DiscardDuplicateWords()
	require.Equal(t, 2, list.Len())

	list.FilterWords(map[string]struct{}{"beli": {}}, true)
	require.Equal(t, 2, list.Len())
	require.Equal(t, 2, list.Clusters[0].Len())

	list.Focus("makan")
	require.Equal(t, 1, list.Len())
}

func TestLexicons(t *testing.T) {
	list := &List{Clusters: []*Cluster{
		mustParse(t, "minum : diminum :: makan : dimakan"),
		mustParse(t, "minum : minuman :: makan : makanan"),
	}}

	paradigm := list.ParadigmLexicon()
	require.Equal(t, 6, paradigm.Len())
	require.Equal(t, []string{"diminum", "minuman"}, paradigm.Entries("minum"))
	require.Equal(t, []string{"makan", "makanan"}, paradigm.WithPrefix("mak"))
	require.Nil(t, paradigm.Entries("beli"))

	var buf bytes.Buffer
	require.NoError(t, paradigm.Write(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "makan: { dimakan, makanan }", lines[0])
	require.Equal(t, "minum: { diminum, minuman }", lines[1])

	annotated := list.AnnotatedLexicon()
	require.Equal(t, []string{"<minum> : diminum", "<minum> : minuman"}, annotated.Entries("makan"))
	require.Equal(t, []string{"minum : <diminum>"}, annotated.Entries("dimakan"))
}

package analogx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("# lexicon\nminum 12\n\ndiminum\nminum 3\n  makan\t7\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"minum", "diminum", "makan"}, words)
}

const withHeader = "# ab == ba\n#\nab : abx :: cd : cdx\n"

func TestReadClusters(t *testing.T) {
	list, err := ReadClusters(strings.NewReader(withHeader))
	require.NoError(t, err)
	require.Len(t, list.Clusters, 1)
	require.Equal(t, []string{"ab", "ba"}, list.Indistinguishables.All("ab"))

	list, err = ReadClusters(strings.NewReader("ab : abx :: cd : cdx\n"))
	require.NoError(t, err)
	require.Len(t, list.Clusters, 1)
	require.Empty(t, list.Indistinguishables)
}

package analogx

import (
	"bufio"
	"io"
	"strings"

	"github.com/projectdiscovery/analogx/cluster"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// ReadWords reads one word per line. Only the first field of a line is kept,
// so frequency lists can be read as they are. Blank lines, comments and
// repeated words are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	var words []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, cluster.Comment) {
			continue
		}
		words = append(words, strings.Fields(line)[0])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sliceutil.Dedupe(words), nil
}

// ReadClusters reads a file of clusters with its optional header of
// indistinguishable words, the format written by cluster.List.Write.
func ReadClusters(r io.Reader) (*cluster.List, error) {
	return cluster.ReadList(r, true)
}

// Package vectors turns a list of words into raw analogical clusters.
//
// Every word is represented by the vector of its character counts. Words with
// the same vector are indistinguishable; a ratio A : B is represented by the
// difference of the vectors of B and A, and ratios with the same difference
// make a raw cluster. Raw clusters meet the character occurrence constraint
// only and are meant to be split afterwards.
package vectors

import (
	"sort"
	"strconv"
	"strings"

	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/gologger"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Vector holds character counts in the order of the feature list.
type Vector []int

// Sub returns v - other.
func (v Vector) Sub(other Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - other[i]
	}
	return out
}

// Zero reports whether every component is 0.
func (v Vector) Zero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Negative reports whether the first nonzero component is negative.
func (v Vector) Negative() bool {
	for _, x := range v {
		if x != 0 {
			return x < 0
		}
	}
	return false
}

func (v Vector) key() string {
	var sb strings.Builder
	for i, x := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(x))
	}
	return sb.String()
}

// FeatureVectors are the character vectors of a list of words.
type FeatureVectors struct {
	features           []rune
	words              []string
	vectors            map[string]Vector
	indistinguishables cluster.Indistinguishables
	distinguishables   []string
}

// New computes the vectors of words. Empty and repeated words are dropped.
func New(words []string) *FeatureVectors {
	var clean []string
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			clean = append(clean, w)
		}
	}
	clean = sliceutil.Dedupe(clean)
	sort.Strings(clean)

	seen := make(map[rune]struct{})
	for _, w := range clean {
		for _, r := range w {
			seen[r] = struct{}{}
		}
	}
	features := make([]rune, 0, len(seen))
	for r := range seen {
		features = append(features, r)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	position := make(map[rune]int, len(features))
	for i, r := range features {
		position[r] = i
	}

	fv := &FeatureVectors{
		features: features,
		words:    clean,
		vectors:  make(map[string]Vector, len(clean)),
	}
	for _, w := range clean {
		v := make(Vector, len(features))
		for _, r := range w {
			v[position[r]]++
		}
		fv.vectors[w] = v
	}
	fv.group()
	return fv
}

// group gathers words with identical vectors. Words are sorted, so the first
// word of a class is its canonical word.
func (fv *FeatureVectors) group() {
	classes := make(map[string][]string)
	var order []string
	for _, w := range fv.words {
		k := fv.vectors[w].key()
		if _, ok := classes[k]; !ok {
			order = append(order, k)
		}
		classes[k] = append(classes[k], w)
	}
	fv.indistinguishables = make(cluster.Indistinguishables)
	for _, k := range order {
		class := classes[k]
		fv.distinguishables = append(fv.distinguishables, class[0])
		if len(class) > 1 {
			fv.indistinguishables.Add(class)
		}
	}
}

// Features returns the sorted characters indexing the vectors.
func (fv *FeatureVectors) Features() []rune {
	return fv.features
}

// Words returns the sorted distinct words.
func (fv *FeatureVectors) Words() []string {
	return fv.words
}

// Vector returns the vector of word.
func (fv *FeatureVectors) Vector(word string) (Vector, bool) {
	v, ok := fv.vectors[word]
	return v, ok
}

// Indistinguishables returns the classes of words with identical vectors,
// only classes with more than one word.
func (fv *FeatureVectors) Indistinguishables() cluster.Indistinguishables {
	return fv.indistinguishables
}

// Distinguishables returns one word per class, the canonical one, sorted.
func (fv *FeatureVectors) Distinguishables() []string {
	return fv.distinguishables
}

// Clusters groups the ratios between distinguishable words by vector
// difference. A ratio is oriented so that the first nonzero component of
// its difference is positive. Clusters with fewer than minSize ratios are
// dropped and, when focus is not empty, so are the clusters that do not
// contain it. Clusters are sorted by decreasing size, then by first
// appearance.
func (fv *FeatureVectors) Clusters(minSize int, focus string) []*cluster.Cluster {
	if minSize < 2 {
		minSize = 2
	}
	groups := make(map[string][]cluster.Ratio)
	var order []string
	words := fv.distinguishables
	for i := 0; i < len(words); i++ {
		vi := fv.vectors[words[i]]
		for j := i + 1; j < len(words); j++ {
			diff := fv.vectors[words[j]].Sub(vi)
			if diff.Zero() {
				continue
			}
			r := cluster.Ratio{Left: words[i], Right: words[j]}
			if diff.Negative() {
				r = r.Flip()
				for n := range diff {
					diff[n] = -diff[n]
				}
			}
			k := diff.key()
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], r)
		}
	}

	var out []*cluster.Cluster
	for _, k := range order {
		ratios := groups[k]
		if len(ratios) < minSize {
			continue
		}
		c, err := cluster.New(ratios)
		if err != nil {
			continue
		}
		if focus != "" && !c.Contains(focus) {
			continue
		}
		out = append(out, c)
	}
	cluster.SortBySize(out)
	gologger.Verbose().Msgf("%d words, %d distinguishable, %d raw clusters", len(fv.words), len(words), len(out))
	return out
}

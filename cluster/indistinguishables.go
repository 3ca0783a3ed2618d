package cluster

import (
	"sort"
	"strings"

	mapsutil "github.com/projectdiscovery/utils/maps"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

// Indistinguishables maps the canonical word of an equivalence class, its
// smallest member, to all the words of the class including itself. Words of a
// class have identical feature vectors and are interchangeable when
// clustering.
type Indistinguishables map[string][]string

// NewIndistinguishables builds the mapping from equivalence classes.
func NewIndistinguishables(classes [][]string) Indistinguishables {
	ind := make(Indistinguishables, len(classes))
	for _, class := range classes {
		ind.Add(class)
	}
	return ind
}

// Add registers one class, duplicates are removed and members sorted.
func (ind Indistinguishables) Add(class []string) {
	words := sliceutil.Dedupe(class)
	if len(words) == 0 {
		return
	}
	sort.Strings(words)
	ind[words[0]] = words
}

// All returns the words indistinguishable from word, which is word alone when
// it is not the canonical word of a class.
func (ind Indistinguishables) All(word string) []string {
	if words, ok := ind[word]; ok {
		return words
	}
	return []string{word}
}

// Canonicals returns the canonical words in sorted order.
func (ind Indistinguishables) Canonicals() []string {
	keys := mapsutil.GetKeys(ind)
	sort.Strings(keys)
	return keys
}

// Sizes returns the number of classes per class cardinal.
func (ind Indistinguishables) Sizes() map[int]int {
	sizes := make(map[int]int)
	for _, words := range ind {
		sizes[len(words)]++
	}
	return sizes
}

// parseIndistinguishable parses the body of "# w1 == w2 == ...".
func parseIndistinguishable(line string) []string {
	line = strings.TrimSpace(strings.TrimPrefix(line, Comment))
	parts := strings.Split(line, Duplicate)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			words = append(words, p)
		}
	}
	return words
}

// String renders the classes with more than one member as comment lines,
// followed by the bare comment line that ends the header.
func (ind Indistinguishables) String() string {
	var sb strings.Builder
	for _, key := range ind.Canonicals() {
		words := ind[key]
		if len(words) < 2 {
			continue
		}
		sb.WriteString(Comment + " " + strings.Join(words, Duplicate) + "\n")
	}
	sb.WriteString(Comment + " \n")
	return sb.String()
}
